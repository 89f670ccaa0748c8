package config

import (
	"log"
	"net/url"
	"strings"
)

// ParseEndpoints splits a comma separated list of backend URLs. Entries that
// are not absolute http(s) URLs are skipped with a warning.
func ParseEndpoints(raw string) []string {
	var endpoints []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		u, err := url.Parse(part)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			log.Printf("[Config] Ignoring invalid backend URL: %q", part)
			continue
		}
		if seen[part] {
			continue
		}
		seen[part] = true
		endpoints = append(endpoints, part)
	}
	return endpoints
}
