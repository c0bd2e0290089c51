package gfase

import (
	"sort"

	"github.com/kshedden/gonpy"
)

// WriteWeightMatrixNPY dumps the dense N×N edge-weight matrix, in node-id
// order, as a float64 .npy array for downstream inspection in numpy or
// pandas. N is the number of nodes; missing edges are 0. This is
// diagnostic-only output, not consumed by the solver itself.
func WriteWeightMatrixNPY(g *Graph, path string) error {
	ids := g.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	n := len(ids)

	index := make(map[int32]int, n)
	for i, id := range ids {
		index[id] = i
	}

	data := make([]float64, n*n)
	g.ForEachEdge(func(a, b int32, weight int32) {
		ia, ib := index[a], index[b]
		data[ia*n+ib] = float64(weight)
		data[ib*n+ia] = float64(weight)
	})

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return pathError(path, err)
	}
	w.Shape = []int{n, n}
	if err := w.WriteFloat64(data); err != nil {
		return pathError(path, err)
	}
	return nil
}
