package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// serviceProperties are read with systemctl show for the status table.
var serviceProperties = []string{
	"Id",
	"Description",
	"LoadState",
	"ActiveState",
	"SubState",
	"MainPID",
	"ActiveEnterTimestamp",
	"NRestarts",
	"MemoryCurrent",
}

func unitName(service string) string {
	if strings.HasSuffix(service, ".service") {
		return service
	}
	return service + ".service"
}

func statusCommand(service string) string {
	return fmt.Sprintf("systemctl show %s --no-pager --property=%s",
		unitName(service), strings.Join(serviceProperties, ","))
}

func logsCommand(service string, lines int) string {
	if lines <= 0 {
		lines = 50
	}
	return fmt.Sprintf("journalctl -u %s -n %d --no-pager -o cat", unitName(service), lines)
}

func healthCommand(port, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("curl -s -o /dev/null -w '%%{http_code}' http://localhost:%s%s", port, path)
}

// parseProperties turns systemctl show output (Key=Value lines) into a map.
func parseProperties(output string) map[string]string {
	props := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok || key == "" {
			continue
		}
		props[key] = value
	}
	return props
}

// domainOf extracts the host Caddy matches on from the public app URL.
func domainOf(appURL string) (string, error) {
	u, err := url.Parse(appURL)
	if err != nil {
		return "", fmt.Errorf("parse app url: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("app url %q has no host", appURL)
	}
	return u.Hostname(), nil
}

type CaddySite struct {
	Domain       string
	Root         string
	ReverseProxy string
}

type caddyHandle struct {
	Handler   string `json:"handler"`
	Root      string `json:"root"`
	Upstreams []struct {
		Dial string `json:"dial"`
	} `json:"upstreams"`
	Routes []struct {
		Handle []caddyHandle `json:"handle"`
	} `json:"routes"`
}

func (h caddyHandle) apply(site *CaddySite) {
	if h.Handler == "file_server" && h.Root != "" {
		site.Root = h.Root
	}
	if h.Handler == "reverse_proxy" && len(h.Upstreams) > 0 {
		site.ReverseProxy = h.Upstreams[0].Dial
	}
	for _, sub := range h.Routes {
		for _, nested := range sub.Handle {
			nested.apply(site)
		}
	}
}

// parseCaddyAPI reads the servers object from Caddy's admin API.
func parseCaddyAPI(content string) ([]CaddySite, error) {
	var servers map[string]struct {
		Routes []struct {
			Match []struct {
				Host []string `json:"host"`
			} `json:"match"`
			Handle []caddyHandle `json:"handle"`
		} `json:"routes"`
	}

	if err := json.Unmarshal([]byte(content), &servers); err != nil {
		return nil, err
	}

	var sites []CaddySite
	for _, server := range servers {
		for _, route := range server.Routes {
			if len(route.Match) == 0 {
				continue
			}
			for _, host := range route.Match[0].Host {
				site := CaddySite{Domain: host}
				for _, handle := range route.Handle {
					handle.apply(&site)
				}
				sites = append(sites, site)
			}
		}
	}

	return sites, nil
}

func findSite(sites []CaddySite, domain string) (CaddySite, bool) {
	for _, s := range sites {
		if strings.EqualFold(s.Domain, domain) {
			return s, true
		}
	}
	return CaddySite{}, false
}
