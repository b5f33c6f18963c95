package routing

import "strings"

type pathRule struct {
	prefix    string
	serviceID string
}

// hostTable maps the paths of one domain to service ids. Rules are
// evaluated in order and the first match wins, so a longer prefix must
// precede any shorter prefix it extends.
type hostTable struct {
	domain   string
	rules    []pathRule
	fallback string
}

func (t hostTable) resolve(path string) string {
	for _, rule := range t.rules {
		if matchesContextPath(rule.prefix, path) {
			return rule.serviceID
		}
	}
	return t.fallback
}

// The consumer domain is checked before the admin domain.
func decisionTables(cfg Config) []hostTable {
	return []hostTable{
		{
			domain: cfg.ConsumerDomain,
			rules: []pathRule{
				{prefix: "/consumer-web", serviceID: ServiceConsumerWeb},
			},
			fallback: ServiceConsumerWebStatic,
		},
		{
			domain: cfg.ConsumerAdminDomain,
			rules: []pathRule{
				{prefix: "/consumer-web-admin-other", serviceID: ServiceConsumerWebAdminOther},
				{prefix: "/consumer-web-admin", serviceID: ServiceConsumerWebAdmin},
			},
			fallback: ServiceConsumerWebAdminStatic,
		},
	}
}

// matchesContextPath reports whether path is prefix itself (ignoring
// case) or lies beneath it. A bare prefix match would let
// "/consumer-web-admin-other" fall under "/consumer-web-admin".
func matchesContextPath(prefix, path string) bool {
	return strings.EqualFold(path, prefix) || strings.HasPrefix(path, prefix+"/")
}
