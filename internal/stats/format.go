package stats

import (
	"fmt"
	"strings"
)

// Detail formats a single stat as "STR 15 (+2)".
func (b *Balancer) Detail(a Ability) (string, error) {
	v, err := b.Value(a)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d (%+d)", a.Abbrev(), v, Modifier(v)), nil
}

// String formats every stat in order, e.g. "STR 15 CON 14 DEX 13 ...".
func (b *Balancer) String() string {
	parts := make([]string, len(b.order))
	for i, a := range b.order {
		parts[i] = fmt.Sprintf("%s %d", a.Abbrev(), b.stats[i])
	}
	return strings.Join(parts, " ")
}
