package gfase_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gfase "github.com/jzhang-dev/gfase-maxcut-solver"
)

func TestLoadContactMapCSVAccumulatesDuplicateRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.csv")
	content := "contig_a,contig_b,5\ncontig_a,contig_b,3\ncontig_b,contig_c,2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idMap := gfase.NewIDMap()
	g := gfase.NewGraph()
	if err := gfase.LoadContactMapCSV(path, idMap, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Size() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.Size())
	}
	idA, _ := idMap.GetID("contig_a")
	idB, _ := idMap.GetID("contig_b")
	if w := g.GetEdgeWeight(idA, idB); w != 8 {
		t.Fatalf("expected accumulated weight 8, got %d", w)
	}
}

func TestWriteBandageCSVUsesFixedPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bandage.csv")

	g := gfase.NewGraph()
	g.TryInsertNode(0)
	g.TryInsertNode(1)
	if err := g.AddAlt(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetPartition(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetPartition(1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idMap := gfase.NewIDMap()
	idMap.Insert(0, "contig_a.0")
	idMap.Insert(1, "contig_a.1")

	if err := gfase.WriteBandageCSV(g, idMap, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Cornflower Blue") || !strings.Contains(text, "Plum") {
		t.Fatalf("expected both phase colors present, got:\n%s", text)
	}
	if !strings.HasPrefix(text, "Name,Phase,Coverage,Length,Color\n") {
		t.Fatalf("expected a header row, got:\n%s", text)
	}
}

func TestWriteFinalComponentsCSVSkipsSingletons(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "components_final.csv")

	g := gfase.NewGraph()
	g.TryInsertNode(0)
	g.TryInsertNode(1)
	g.TryInsertNode(2)
	if err := g.AddAlt(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idMap := gfase.NewIDMap()
	idMap.Insert(0, "a.0")
	idMap.Insert(1, "a.1")
	idMap.Insert(2, "b")

	if err := gfase.WriteFinalComponentsCSV(g, idMap, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header row plus side 0 and side 1 of the one multi-member component, got %d: %v", len(lines), lines)
	}
	if lines[0] != "side,nodes" {
		t.Fatalf("expected a side,nodes header, got %q", lines[0])
	}
}
