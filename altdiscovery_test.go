package gfase_test

import (
	"errors"
	"testing"

	gfase "github.com/jzhang-dev/gfase-maxcut-solver"
)

func TestNamingConventionAltPairProviderPairsBySharedPrefix(t *testing.T) {
	idMap := gfase.NewIDMap()
	idMap.Insert(0, "contig_a.0")
	idMap.Insert(1, "contig_a.1")
	idMap.Insert(2, "U_contig_b")

	g := gfase.NewGraph()
	g.TryInsertNode(0)
	g.TryInsertNode(1)
	g.TryInsertNode(2)

	provider := gfase.NamingConventionAltPairProvider{}
	pairs, err := provider.FindAltPairs(idMap, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 pair, got %d", len(pairs))
	}
	got := pairs[0]
	if !(got.A == 0 && got.B == 1) && !(got.A == 1 && got.B == 0) {
		t.Fatalf("expected pair (0,1), got (%d,%d)", got.A, got.B)
	}
}

func TestNamingConventionAltPairProviderNoAltsFound(t *testing.T) {
	idMap := gfase.NewIDMap()
	idMap.Insert(0, "U_unitig_only")

	g := gfase.NewGraph()
	g.TryInsertNode(0)

	provider := gfase.NamingConventionAltPairProvider{}
	_, err := provider.FindAltPairs(idMap, g)
	if !errors.Is(err, gfase.ErrNoAltsFound) {
		t.Fatalf("expected ErrNoAltsFound, got %v", err)
	}
}
