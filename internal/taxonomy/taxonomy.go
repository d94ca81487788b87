// Package taxonomy defines the fixed learning-domain level sets and the
// descriptive catalog (level names, item-type legend) used across blueprints,
// the question bank, and exports.
package taxonomy

import "fmt"

// Domain is a learning domain a blueprint row belongs to.
type Domain string

const (
	Cognitive   Domain = "cognitive"
	Psychomotor Domain = "psychomotor"
	Affective   Domain = "affective"
)

// domainLevels holds the fixed level set per domain, in display order.
var domainLevels = map[Domain][]string{
	Cognitive:   {"C1", "C2", "C3", "C4", "C5", "C6"},
	Psychomotor: {"P1", "P2", "P3", "P4", "P5", "P6", "P7"},
	Affective:   {"A1", "A2", "A3", "A4", "A5"},
}

// Domains returns all domains in display order.
func Domains() []Domain {
	return []Domain{Cognitive, Psychomotor, Affective}
}

// ParseDomain converts a string into a Domain.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case Cognitive, Psychomotor, Affective:
		return Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain: %q", s)
}

// Levels returns the ordered level codes for a domain. The returned slice is
// a copy and safe to mutate.
func Levels(d Domain) []string {
	levels, ok := domainLevels[d]
	if !ok {
		return nil
	}
	out := make([]string, len(levels))
	copy(out, levels)
	return out
}

// Valid reports whether level belongs to the domain's fixed level set.
func Valid(d Domain, level string) bool {
	for _, l := range domainLevels[d] {
		if l == level {
			return true
		}
	}
	return false
}
