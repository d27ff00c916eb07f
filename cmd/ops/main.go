package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"

	"github.com/patelhettt/vulninsights/internal/config"
)

const caddyServersURL = "http://localhost:2019/config/apps/http/servers"

var (
	sshHost    string
	sshPort    string
	sshKeyPath string
	knownHosts string
	service    string
	cfg        *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ops",
		Short: "Operate the deployed VulnInsights server over SSH",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if sshHost == "" {
				return fmt.Errorf("--host is required or set SSH_HOST env")
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&sshHost, "host", os.Getenv("SSH_HOST"), "SSH host (user@host) or set SSH_HOST env")
	rootCmd.PersistentFlags().StringVar(&sshPort, "port", "22", "SSH port")
	rootCmd.PersistentFlags().StringVar(&sshKeyPath, "key", "", "Path to SSH private key (default: ssh-agent, then ~/.ssh/id_ed25519)")
	rootCmd.PersistentFlags().StringVar(&knownHosts, "known-hosts", "", "known_hosts file used to verify the server (default: ~/.ssh/known_hosts)")
	rootCmd.PersistentFlags().StringVar(&service, "service", "vulninsights", "systemd unit running the site")

	rootCmd.AddCommand(statusCmd(), logsCmd(), restartCmd(), healthCmd(), siteCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the systemd state of the site service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client *ssh.Client) error {
				output, err := runSSHCommand(client, statusCommand(service))
				if err != nil {
					return fmt.Errorf("systemctl show: %w", err)
				}
				renderStatus(cmd.OutOrStdout(), parseProperties(output))
				return nil
			})
		},
	}
}

func logsCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent journal lines for the site service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client *ssh.Client) error {
				output, err := runSSHCommand(client, logsCommand(service, lines))
				if err != nil {
					return fmt.Errorf("journalctl: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), output)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of journal lines")
	return cmd
}

func restartCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the site service",
		RunE: func(cmd *cobra.Command, args []string) error {
			unit := unitName(service)
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Restart %s on %s?", unit, sshHost)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			return withClient(func(client *ssh.Client) error {
				if output, err := runSSHCommand(client, "systemctl restart "+unit); err != nil {
					return fmt.Errorf("systemctl restart: %w: %s", err, strings.TrimSpace(output))
				}
				output, err := runSSHCommand(client, statusCommand(service))
				if err != nil {
					return fmt.Errorf("systemctl show: %w", err)
				}
				renderStatus(cmd.OutOrStdout(), parseProperties(output))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func healthCmd() *cobra.Command {
	paths := []string{"/", "/blogs", "/tools", "/about", "/robots.txt", "/sitemap.xml"}
	return &cobra.Command{
		Use:   "health",
		Short: "Request each public page from the server itself",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client *ssh.Client) error {
				t := newTable(cmd.OutOrStdout())
				t.AppendHeader(table.Row{"Path", "Status"})
				failed := 0
				for _, p := range paths {
					code, err := runSSHCommand(client, healthCommand(cfg.Port, p))
					code = strings.TrimSpace(code)
					if err != nil || code != "200" {
						failed++
					}
					if code == "" {
						code = "-"
					}
					t.AppendRow(table.Row{p, code})
				}
				t.Render()
				if failed > 0 {
					return fmt.Errorf("%d of %d pages unhealthy", failed, len(paths))
				}
				return nil
			})
		},
	}
}

func siteCmd() *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Show the Caddy route serving the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domain == "" {
				d, err := domainOf(cfg.AppURL)
				if err != nil {
					return err
				}
				domain = d
			}
			return withClient(func(client *ssh.Client) error {
				output, err := runSSHCommand(client, "curl -s "+caddyServersURL)
				if err != nil {
					return fmt.Errorf("caddy API: %w", err)
				}
				sites, err := parseCaddyAPI(output)
				if err != nil {
					return fmt.Errorf("parse caddy config: %w", err)
				}
				site, ok := findSite(sites, domain)
				if !ok {
					return fmt.Errorf("no caddy route for %s", domain)
				}
				renderSite(cmd.OutOrStdout(), site)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "domain to look up (default: host of APP_URL)")
	return cmd
}

func withClient(fn func(*ssh.Client) error) error {
	client, err := sshConnect(sshHost, sshPort, sshKeyPath, knownHosts)
	if err != nil {
		return fmt.Errorf("ssh connect: %w", err)
	}
	defer client.Close()
	return fn(client)
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s Type 'yes' to confirm: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderStatus(w io.Writer, props map[string]string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Property", "Value"})
	for _, key := range serviceProperties {
		value := props[key]
		if value == "" {
			value = "-"
		}
		t.AppendRow(table.Row{key, value})
	}
	t.Render()
}

func renderSite(w io.Writer, site CaddySite) {
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Domain", "Root", "Reverse Proxy"})
	t.AppendRow(table.Row{site.Domain, orDash(site.Root), orDash(site.ReverseProxy)})
	t.Render()
}
