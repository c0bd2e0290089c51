package gfase

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/shenwei356/xopen"
)

// bandagePalette mirrors GFAse's fixed three-color scheme for phase 1,
// phase -1, and unphased (0) nodes in a Bandage-compatible CSV overlay.
var bandagePalette = [3]string{"Cornflower Blue", "Plum", "Tomato"}

func bandageColor(partition int8) string {
	switch partition {
	case 1:
		return bandagePalette[0]
	case -1:
		return bandagePalette[1]
	default:
		return bandagePalette[2]
	}
}

// LoadContactMapCSV reads a "name_a,name_b,weight" contact map with no
// header. Names not already present in idMap are inserted with fresh ids
// (counting up from one past the largest id in g or idMap), following the original loader's implicit id
// assignment. Edges are inserted via TryInsertEdge with the parsed
// weight as the default and accumulated with IncrementEdgeWeight on
// repeat rows, so duplicate rows sum rather than overwrite.
func LoadContactMapCSV(path string, idMap *IDMap, g *Graph) error {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return pathError(path, err)
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	nextID := g.MaxID() + 1
	idMap.ForEach(func(_ string, id int32) {
		if id >= nextID {
			nextID = id + 1
		}
	})
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ",", 4)
		if len(fields) != 3 {
			return malformedError(path, "expected 3 comma-separated fields")
		}
		nameA, nameB, weightField := fields[0], fields[1], fields[2]

		weight, err := strconv.ParseInt(weightField, 10, 32)
		if err != nil {
			return malformedError(path, "non-integer weight: "+weightField)
		}

		idA, err := resolveOrAssignID(idMap, g, nameA, &nextID)
		if err != nil {
			return err
		}
		idB, err := resolveOrAssignID(idMap, g, nameB, &nextID)
		if err != nil {
			return err
		}

		if idA == idB {
			continue
		}
		if !g.HasEdge(idA, idB) {
			if err := g.TryInsertEdge(idA, idB, int32(weight)); err != nil {
				return err
			}
		} else {
			if err := g.IncrementEdgeWeight(idA, idB, int32(weight)); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func resolveOrAssignID(idMap *IDMap, g *Graph, name string, nextID *int32) (int32, error) {
	if id, ok := idMap.GetID(name); ok {
		g.TryInsertNode(id)
		return id, nil
	}
	id := *nextID
	*nextID++
	idMap.Insert(id, name)
	g.TryInsertNode(id)
	return id, nil
}

// WriteContactMapCSV writes every edge as "name_a,name_b,weight", gzip
// compressed via klauspost/compress when path ends in ".gz".
func WriteContactMapCSV(g *Graph, idMap *IDMap, path string) error {
	return writeCSVRows(path, func(w *bufio.Writer) error {
		var writeErr error
		g.ForEachEdge(func(a, b int32, weight int32) {
			if writeErr != nil {
				return
			}
			nameA, _ := idMap.GetName(a)
			nameB, _ := idMap.GetName(b)
			_, writeErr = w.WriteString(nameA + "," + nameB + "," + strconv.FormatInt(int64(weight), 10) + "\n")
		})
		return writeErr
	}, path)
}

// WriteBandageCSV writes the "Name,Phase,Coverage,Length,Color" overlay
// consumed by Bandage, one row per node.
func WriteBandageCSV(g *Graph, idMap *IDMap, path string) error {
	return writeCSVRows(path, func(w *bufio.Writer) error {
		if _, err := w.WriteString("Name,Phase,Coverage,Length,Color\n"); err != nil {
			return err
		}
		var writeErr error
		g.ForEachNode(func(id int32, n *MultiNode) {
			if writeErr != nil {
				return
			}
			name, _ := idMap.GetName(id)
			row := strings.Join([]string{
				name,
				strconv.Itoa(int(n.Partition)),
				strconv.FormatInt(n.Coverage, 10),
				strconv.Itoa(int(n.Length)),
				bandageColor(n.Partition),
			}, ",")
			_, writeErr = w.WriteString(row + "\n")
		})
		return writeErr
	}, path)
}

// WriteNodeDataCSV writes the plain "Id,Name,Coverage,Length" node table.
func WriteNodeDataCSV(g *Graph, idMap *IDMap, path string) error {
	return writeCSVRows(path, func(w *bufio.Writer) error {
		if _, err := w.WriteString("Id,Name,Coverage,Length\n"); err != nil {
			return err
		}
		var writeErr error
		g.ForEachNode(func(id int32, n *MultiNode) {
			if writeErr != nil {
				return
			}
			name, _ := idMap.GetName(id)
			row := strings.Join([]string{
				strconv.Itoa(int(id)),
				name,
				strconv.FormatInt(n.Coverage, 10),
				strconv.Itoa(int(n.Length)),
			}, ",")
			_, writeErr = w.WriteString(row + "\n")
		})
		return writeErr
	}, path)
}

// WriteFinalComponentsCSV writes two "side,nodes" rows per alt component,
// one for Side0 and one for Side1, where nodes is a space-joined list of
// names on that side. Singleton (non-alt) components are skipped. This format is not
// part of the original CLI's output set; it supplements it the way
// gfase_maxcut_solver.solver's components_final.csv does.
func WriteFinalComponentsCSV(g *Graph, idMap *IDMap, path string) error {
	return writeCSVRows(path, func(w *bufio.Writer) error {
		if _, err := w.WriteString("side,nodes\n"); err != nil {
			return err
		}
		var writeErr error
		for _, comp := range g.GetAltComponents() {
			if len(comp.Side0)+len(comp.Side1) <= 1 {
				continue
			}
			if err := writeComponentSide(w, idMap, 0, comp.Side0); err != nil {
				return err
			}
			if err := writeComponentSide(w, idMap, 1, comp.Side1); err != nil {
				return err
			}
		}
		return writeErr
	}, path)
}

func writeComponentSide(w *bufio.Writer, idMap *IDMap, side int, members map[int32]struct{}) error {
	names := make([]string, 0, len(members))
	for id := range members {
		name, _ := idMap.GetName(id)
		names = append(names, name)
	}
	_, err := w.WriteString(strconv.Itoa(side) + "," + strings.Join(names, " ") + "\n")
	return err
}

// writeCSVRows opens path for writing, transparently gzip-compressing
// with klauspost/compress when the extension is ".gz" (the teacher's own
// writers only ever produced plain text; gzip output is new surface for
// large contact maps), and runs body against a buffered writer before
// flushing.
func writeCSVRows(path string, body func(w *bufio.Writer) error, origPath string) error {
	fh, err := os.Create(path)
	if err != nil {
		return pathError(origPath, err)
	}
	defer fh.Close()

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(fh)
		defer gz.Close()
		w := bufio.NewWriter(gz)
		if err := body(w); err != nil {
			return pathError(origPath, err)
		}
		if err := w.Flush(); err != nil {
			return pathError(origPath, err)
		}
		return nil
	}

	w := bufio.NewWriter(fh)
	if err := body(w); err != nil {
		return pathError(origPath, err)
	}
	return w.Flush()
}
