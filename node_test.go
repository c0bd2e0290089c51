package gfase_test

import (
	"errors"
	"testing"

	gfase "github.com/jzhang-dev/gfase-maxcut-solver"
)

func TestNewGraphEmpty(t *testing.T) {
	g := gfase.NewGraph()
	if g.Size() != 0 {
		t.Fatalf("expected empty graph, got size %d", g.Size())
	}
	if g.MaxID() != -1 {
		t.Fatalf("expected MaxID() == -1 on empty graph, got %d", g.MaxID())
	}
}

func TestInsertNodeRejectsBadPartition(t *testing.T) {
	g := gfase.NewGraph()
	if err := g.InsertNode(0, 2); !errors.Is(err, gfase.ErrInvalidPartition) {
		t.Fatalf("expected ErrInvalidPartition, got %v", err)
	}
}

func TestTryInsertNodeIdempotent(t *testing.T) {
	g := gfase.NewGraph()
	g.TryInsertNode(5)
	n, _ := g.GetNode(5)
	if n.HasAlt() {
		t.Fatalf("fresh node should have no alts")
	}
	if err := g.SetNodeCoverage(5, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.TryInsertNode(5)
	n, _ = g.GetNode(5)
	if n.Coverage != 42 {
		t.Fatalf("TryInsertNode must not overwrite an existing node")
	}
}

func TestCanonicalEdgeOrderingIndependent(t *testing.T) {
	g := gfase.NewGraph()
	g.TryInsertNode(1)
	g.TryInsertNode(2)
	if err := g.TryInsertEdge(2, 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.HasEdge(1, 2) || !g.HasEdge(2, 1) {
		t.Fatalf("edge lookup must be order independent")
	}
	if g.GetEdgeWeight(1, 2) != g.GetEdgeWeight(2, 1) {
		t.Fatalf("edge weight must be order independent")
	}
}

func TestIncrementEdgeWeightNoopWhenMissing(t *testing.T) {
	g := gfase.NewGraph()
	g.TryInsertNode(1)
	g.TryInsertNode(2)
	if err := g.IncrementEdgeWeight(1, 2, 5); err != nil {
		t.Fatalf("IncrementEdgeWeight on a missing edge must not error: %v", err)
	}
	if g.HasEdge(1, 2) {
		t.Fatalf("IncrementEdgeWeight must not create an edge")
	}
}

func TestRemoveNodeClearsIncidentEdgesAndAlts(t *testing.T) {
	g := gfase.NewGraph()
	g.TryInsertNode(1)
	g.TryInsertNode(2)
	g.TryInsertNode(3)
	if err := g.TryInsertEdge(1, 2, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddAlt(1, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.RemoveNode(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.HasEdge(1, 2) {
		t.Fatalf("edges incident on a removed node must be cleared")
	}
	n3, _ := g.GetNode(3)
	if n3.HasAlt() {
		t.Fatalf("reverse alt reference on node 3 must be cleared")
	}
}

func TestRemoveNodeRecomputesMaxID(t *testing.T) {
	g := gfase.NewGraph()
	g.TryInsertNode(1)
	g.TryInsertNode(5)
	if err := g.RemoveNode(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.MaxID() != 1 {
		t.Fatalf("expected MaxID() to fall back to 1, got %d", g.MaxID())
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := gfase.NewGraph()
	g.TryInsertNode(1)
	g.TryInsertNode(2)
	if err := g.TryInsertEdge(1, 2, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clone := g.Clone()
	clone.RemoveEdge(1, 2)
	if !g.HasEdge(1, 2) {
		t.Fatalf("mutating a clone must not affect the original")
	}
}

func TestForEachEdgeInOrderOfWeightDescending(t *testing.T) {
	g := gfase.NewGraph()
	for i := int32(1); i <= 4; i++ {
		g.TryInsertNode(i)
	}
	_ = g.TryInsertEdge(1, 2, 10)
	_ = g.TryInsertEdge(2, 3, 30)
	_ = g.TryInsertEdge(3, 4, 20)

	var weights []int32
	g.ForEachEdgeInOrderOfWeight(func(a, b int32, weight int32) {
		weights = append(weights, weight)
	})
	if len(weights) != 3 || weights[0] != 30 || weights[1] != 20 || weights[2] != 10 {
		t.Fatalf("expected descending [30 20 10], got %v", weights)
	}
}
