package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithFrontmatter(t *testing.T) {
	src := []byte(`---
name: Het Patel
order: 1
expertise:
  - OWASP
  - Web Security
---
Breaks things **responsibly**.
`)

	var meta struct {
		Name      string   `yaml:"name"`
		Order     int      `yaml:"order"`
		Expertise []string `yaml:"expertise"`
	}

	html, err := NewParser().ParseWithFrontmatter(src, &meta)
	require.NoError(t, err)

	assert.Equal(t, "Het Patel", meta.Name)
	assert.Equal(t, 1, meta.Order)
	assert.Equal(t, []string{"OWASP", "Web Security"}, meta.Expertise)
	assert.Contains(t, string(html), "<strong>responsibly</strong>")
	assert.NotContains(t, string(html), "name:")
}

func TestParseWithFrontmatterInvalidYAML(t *testing.T) {
	src := []byte("---\norder: [oops\n---\nbody\n")

	var meta struct {
		Order int `yaml:"order"`
	}
	_, err := NewParser().ParseWithFrontmatter(src, &meta)
	assert.Error(t, err)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	var meta struct {
		Name string `yaml:"name"`
	}
	html, err := NewParser().ParseWithFrontmatter([]byte("# Hello"), &meta)
	require.NoError(t, err)
	assert.Empty(t, meta.Name)
	assert.Contains(t, string(html), "<h1>Hello</h1>")
}
