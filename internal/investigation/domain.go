package investigation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// NormalizeDomain cleans a submitted domain: scheme and path are stripped
// and the hostname must carry a known public suffix. The full hostname is
// kept (subdomains are investigated as submitted, not reduced to the
// registrable domain).
func NormalizeDomain(raw string) (string, error) {
	host := strings.TrimSpace(strings.ToLower(raw))
	if host == "" {
		return "", fmt.Errorf("domain is empty")
	}

	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil || u.Hostname() == "" {
			return "", fmt.Errorf("invalid domain %q", raw)
		}
		host = u.Hostname()
	} else {
		host = strings.Split(host, "/")[0]
		host = strings.Split(host, ":")[0]
	}

	if !strings.Contains(host, ".") {
		return "", fmt.Errorf("invalid domain %q", raw)
	}
	if _, err := publicsuffix.Domain(host); err != nil {
		return "", fmt.Errorf("invalid domain %q: %w", raw, err)
	}
	return host, nil
}
