package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	cssInput  = "assets/css/input.css"
	cssOutput = "assets/css/output.css"
)

func GenCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Build assets/css/output.css with the tailwind CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "rebuild even when output.css is up to date")
	return cmd
}

func runGen(force bool) error {
	if _, err := exec.LookPath("tailwindcss"); err != nil {
		fmt.Println("Missing binary: tailwindcss")
		fmt.Println("Install with:")
		fmt.Println("  # https://tailwindcss.com/blog/standalone-cli")
		return fmt.Errorf("tailwindcss not found")
	}

	if !force && isUpToDate(cssOutput, tailwindInputs()) {
		fmt.Println("[tailwindcss] skipped")
		return nil
	}

	start := time.Now()
	cmd := exec.Command("tailwindcss", "-i", cssInput, "-o", cssOutput, "--minify")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tailwindcss: %w", err)
	}

	fmt.Printf("[tailwindcss] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// tailwindInputs lists every file whose class names end up in output.css.
func tailwindInputs() []string {
	inputs := []string{cssInput}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	jsFiles, _ := filepath.Glob("assets/js/*.js")
	return append(inputs, jsFiles...)
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
