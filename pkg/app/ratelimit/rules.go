package ratelimit

import (
	"sort"
	"strings"

	"github.com/folioworks/folio/pkg/domain/ratelimit"
)

type Rule struct {
	Prefix string
	Config ratelimit.Config
}

// Rules maps endpoint prefixes to limits. The longest matching prefix wins.
type Rules struct {
	fallback ratelimit.Config
	rules    []Rule
}

func NewRules(fallback ratelimit.Config, rules []Rule) *Rules {
	if !fallback.Valid() {
		fallback = ratelimit.DefaultConfig()
	}
	sorted := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Prefix == "" {
			continue
		}
		if !r.Config.Valid() {
			r.Config = fallback
		}
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Prefix) != len(sorted[j].Prefix) {
			return len(sorted[i].Prefix) > len(sorted[j].Prefix)
		}
		return sorted[i].Prefix < sorted[j].Prefix
	})
	return &Rules{fallback: fallback, rules: sorted}
}

// Resolve returns the scope name and limit that apply to path.
func (r *Rules) Resolve(path string) (string, ratelimit.Config) {
	for _, rule := range r.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Prefix, rule.Config
		}
	}
	return ratelimit.DefaultScope, r.fallback
}
