package gfase

import "strings"

// AltPairProvider yields the alt (mutually exclusive) node pairs found in
// a graph by whatever domain-specific convention the caller supplies.
// This generalizes the original's Shasta-specific haplotype-name parsing
// into a pluggable interface so other naming schemes can be substituted
// without touching the phasing core.
type AltPairProvider interface {
	// FindAltPairs returns every (a,b) pair it can identify as alternate
	// sequences of one another, given the graph's registered node names.
	FindAltPairs(idMap *IDMap, g *Graph) ([]struct{ A, B int32 }, error)
}

// NamingConventionAltPairProvider discovers alt pairs from a
// "<prefix>.<side>" naming convention: two node names sharing the same
// prefix and differing only in their trailing ".0"/".1"-style side tag
// are treated as alts of one another. A leading "U" component on a name
// (unitig-style, unphased) is never paired, mirroring the original's
// treatment of Shasta's "U" prefix as haplotype-agnostic.
type NamingConventionAltPairProvider struct {
	// Separator splits a name into (prefix, side); defaults to "." if empty.
	Separator string
}

func (p NamingConventionAltPairProvider) separator() string {
	if p.Separator == "" {
		return "."
	}
	return p.Separator
}

// FindAltPairs groups the names of nodes present in g by prefix and pairs
// every two names sharing a prefix with distinct suffixes; a prefix with
// a single name is logged as having no alt. It returns ErrNoAltsFound if zero
// pairs are found, and logs a warning if the fraction of nodes
// participating in at least one alt pair falls below 5%.
func (p NamingConventionAltPairProvider) FindAltPairs(idMap *IDMap, g *Graph) ([]struct{ A, B int32 }, error) {
	sep := p.separator()
	groups := make(map[string][]int32)

	idMap.ForEach(func(name string, id int32) {
		if strings.HasPrefix(name, "U") || !g.HasNode(id) {
			return
		}
		idx := strings.LastIndex(name, sep)
		if idx < 0 {
			return
		}
		prefix := name[:idx]
		groups[prefix] = append(groups[prefix], id)
	})

	pairs := make([]struct{ A, B int32 }, 0)
	touched := make(map[int32]struct{})
	for prefix, ids := range groups {
		if len(ids) < 2 {
			log.Noticef("alt discovery: %s has no alt in id map", prefix)
			continue
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pairs = append(pairs, struct{ A, B int32 }{ids[i], ids[j]})
				touched[ids[i]] = struct{}{}
				touched[ids[j]] = struct{}{}
			}
		}
	}

	if len(pairs) == 0 {
		return nil, ErrNoAltsFound
	}

	if g.Size() > 0 && float64(len(touched))/float64(g.Size()) < 0.05 {
		log.Warningf("alt discovery: only %d/%d nodes (%.1f%%) participate in an alt pair", len(touched), g.Size(), 100*float64(len(touched))/float64(g.Size()))
	}

	return pairs, nil
}
