package gfase

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"lukechampine.com/blake3"
)

// GraphChecksum returns a blake3 digest of a graph's edge set and
// partition assignment, hex-encoded. Two graphs with identical topology,
// weights and partitions hash identically regardless of internal map
// iteration order, since edges and nodes are sorted before hashing. The
// solve CLI logs this value after optimization, in the way kai's content
// store keys blobs by digest, giving reproducible-run provenance without
// needing the full graph on hand to compare two outputs.
func GraphChecksum(g *Graph) string {
	h := blake3.New(32, nil)

	type edgeRow struct {
		a, b   int32
		weight int32
	}
	edges := make([]edgeRow, 0, g.EdgeCount())
	g.ForEachEdge(func(a, b int32, weight int32) {
		edges = append(edges, edgeRow{a, b, weight})
	})
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].a != edges[j].a {
			return edges[i].a < edges[j].a
		}
		return edges[i].b < edges[j].b
	})
	for _, e := range edges {
		h.Write([]byte(strconv.Itoa(int(e.a))))
		h.Write([]byte{','})
		h.Write([]byte(strconv.Itoa(int(e.b))))
		h.Write([]byte{','})
		h.Write([]byte(strconv.Itoa(int(e.weight))))
		h.Write([]byte{'\n'})
	}

	ids := g.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var sb strings.Builder
	for _, id := range ids {
		n, _ := g.GetNode(id)
		sb.WriteString(strconv.Itoa(int(id)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(n.Partition)))
		sb.WriteByte('\n')
	}
	h.Write([]byte(sb.String()))

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
