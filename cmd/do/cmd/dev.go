package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

type devOptions struct {
	appPort    int
	proxyPort  int
	feedSource string
	metrics    bool
}

func DevCmd() *cobra.Command {
	var opts devOptions

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the site under air with live reload",
		Long: `Rebuild bin/do, then exec air. Every change to Go code, templates,
CSS, JS or team content rebuilds the CSS and restarts the server. The browser
talks to air's proxy, which reloads the page after each restart.

Examples:
  do dev
  do dev --feed-source rss --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.feedSource != "bridge" && opts.feedSource != "rss" {
				return fmt.Errorf("invalid --feed-source %q (bridge or rss)", opts.feedSource)
			}
			return runDev(opts)
		},
	}

	cmd.Flags().IntVar(&opts.appPort, "port", 8090, "port the server listens on")
	cmd.Flags().IntVar(&opts.proxyPort, "proxy-port", 8080, "port of air's live-reload proxy")
	cmd.Flags().StringVar(&opts.feedSource, "feed-source", "bridge", "feed source: bridge (rss2json) or rss (Medium directly)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "serve /metrics")
	return cmd
}

func runDev(opts devOptions) error {
	airPath, err := exec.LookPath("air")
	if err != nil {
		fmt.Println("Missing binary: air")
		fmt.Println("Install with:")
		fmt.Println("  go install github.com/air-verse/air@latest")
		return fmt.Errorf("air not found")
	}

	fmt.Println("Building bin/do...")
	build := exec.Command("go", "build", "-o", "bin/do", "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("failed to build do: %w", err)
	}

	fmt.Printf("Serving on http://localhost:%d (app on :%d)\n", opts.proxyPort, opts.appPort)
	return syscall.Exec(airPath, airArgs(opts), devEnv(opts))
}

func airArgs(opts devOptions) []string {
	return []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "./bin/do gen && go build -o ./tmp/main ./cmd/server",
		"-build.bin", "./tmp/main",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,node_modules,tmp,_examples",
		"-build.exclude_regex", "_test.go$|output\\.css$",
		"-build.include_ext", "go,html,css,js,md",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", strconv.Itoa(opts.proxyPort),
		"-proxy.app_port", strconv.Itoa(opts.appPort),
	}
}

// devEnv overrides only what dev mode needs; everything else still comes from
// the shell or .env. Overridden keys are removed first since the child
// process would see the first duplicate.
func devEnv(opts devOptions) []string {
	overrides := []string{
		"APP_ENV=development",
		"APP_URL=http://localhost:" + strconv.Itoa(opts.proxyPort),
		"PORT=" + strconv.Itoa(opts.appPort),
		"FEED_SOURCE=" + opts.feedSource,
		"METRICS_ENABLED=" + strconv.FormatBool(opts.metrics),
	}
	return mergeEnv(os.Environ(), overrides)
}

func mergeEnv(base, overrides []string) []string {
	keys := make(map[string]bool, len(overrides))
	for _, kv := range overrides {
		key, _, _ := strings.Cut(kv, "=")
		keys[key] = true
	}

	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if !keys[key] {
			env = append(env, kv)
		}
	}
	return append(env, overrides...)
}
