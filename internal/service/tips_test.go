package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTipsRandom(t *testing.T) {
	s := NewTipsService()
	s.pick = func(n int) int { return n - 1 }

	assert.Equal(t, tips[len(tips)-1], s.Random())
}

func TestTipsAllIsAPermutation(t *testing.T) {
	all := NewTipsService().All()
	assert.ElementsMatch(t, tips, all)
}
