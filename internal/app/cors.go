package app

import "strings"

// originRule is one allowed_origins entry. An empty scheme accepts both http
// and https. The host may start with "*." to cover subdomains or end with
// ":*" to cover any port.
type originRule struct {
	scheme string
	host   string
}

func splitOrigin(origin string) (scheme, host string) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if s, rest, ok := strings.Cut(origin, "://"); ok {
		scheme, origin = strings.ToLower(s), rest
	}
	if i := strings.IndexByte(origin, '/'); i >= 0 {
		origin = origin[:i]
	}
	return scheme, strings.ToLower(origin)
}

func parseOriginRule(entry string) originRule {
	scheme, host := splitOrigin(entry)
	return originRule{scheme: scheme, host: host}
}

// matchHost reports whether host fits the rule's host pattern. "*.example.com"
// matches subdomains only, never the apex.
func (r originRule) matchHost(host string) bool {
	switch {
	case r.host == host:
		return true
	case strings.HasPrefix(r.host, "*."):
		return strings.HasSuffix(host, r.host[1:])
	case strings.HasSuffix(r.host, ":*"):
		return strings.HasPrefix(host, r.host[:len(r.host)-1])
	}
	return false
}

func (r originRule) allows(origin string) bool {
	scheme, host := splitOrigin(origin)
	if r.scheme != "" && r.scheme != scheme {
		return false
	}
	return r.matchHost(host)
}

// originAllower returns the AllowOriginFunc for the configured entries.
func originAllower(entries []string) func(string) bool {
	rules := make([]originRule, len(entries))
	for i, entry := range entries {
		rules[i] = parseOriginRule(entry)
	}
	return func(origin string) bool {
		for _, rule := range rules {
			if rule.allows(origin) {
				return true
			}
		}
		return false
	}
}
