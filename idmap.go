package gfase

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"
)

// IDMap is the bidirectional name<->id map consumed by the phasing core's
// external interfaces (spec §6): CSV loaders, the Bandage/node-data
// reporters, and the naming-convention alt-discovery helper all go through
// it rather than touching contig names directly.
type IDMap struct {
	idToName map[int32]string
	nameToID map[string]int32
}

// NewIDMap makes an empty id<->name map.
func NewIDMap() *IDMap {
	return &IDMap{
		idToName: make(map[int32]string),
		nameToID: make(map[string]int32),
	}
}

// Insert records an explicit (id, name) pair. A later Insert for the same
// id overwrites the forward mapping but the original name is left
// reachable by name until reassigned as well; callers building a map from
// trusted input should treat ids as unique.
func (m *IDMap) Insert(id int32, name string) {
	m.idToName[id] = name
	m.nameToID[name] = id
}

// Exists reports whether name has been registered.
func (m *IDMap) Exists(name string) bool {
	_, ok := m.nameToID[name]
	return ok
}

// GetID looks up the id for name.
func (m *IDMap) GetID(name string) (int32, bool) {
	id, ok := m.nameToID[name]
	return id, ok
}

// GetName looks up the name for id.
func (m *IDMap) GetName(id int32) (string, bool) {
	name, ok := m.idToName[id]
	return name, ok
}

// Size returns the number of registered (name,id) pairs.
func (m *IDMap) Size() int {
	return len(m.idToName)
}

// ForEach visits every (name,id) pair. Iteration order is unspecified.
// The visitor must not mutate the map.
func (m *IDMap) ForEach(f func(name string, id int32)) {
	for name, id := range m.nameToID {
		f(name, id)
	}
}

// LoadIDMapCSV reads an id<->name map from a two-column "id,name" CSV with
// no header, the format ALLHiC-MaxCut's upstream Python driver writes via
// GfaseMaxcutSolver._write_ids. Transparently handles gzip-compressed
// input via xopen, the way the teacher's FASTA/BAM readers did for their
// own inputs.
func LoadIDMapCSV(path string) (*IDMap, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, pathError(path, err)
	}
	defer fh.Close()

	m := NewIDMap()
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 2 {
			return nil, malformedError(path, "expected 2 comma-separated fields")
		}
		id, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, malformedError(path, "non-integer id: "+fields[0])
		}
		m.Insert(int32(id), fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, pathError(path, err)
	}
	return m, nil
}

// SaveIDMapCSV writes the map back out in the same two-column format
// LoadIDMapCSV reads, so a round trip is lossless modulo iteration order.
func SaveIDMapCSV(m *IDMap, path string) error {
	fh, err := xopen.Wopen(path)
	if err != nil {
		return pathError(path, err)
	}
	defer fh.Close()

	w := bufio.NewWriter(fh)
	for id, name := range m.idToName {
		if _, err := w.WriteString(strconv.FormatInt(int64(id), 10) + "," + name + "\n"); err != nil {
			return pathError(path, err)
		}
	}
	return w.Flush()
}
