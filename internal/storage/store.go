// Package storage keeps exported snapshots on disk, one directory each with
// the artifact, a metadata file and a CSV dump of the scene nodes.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/periodix/internal/scene"
)

var ErrNotFound = errors.New("storage: snapshot not found")

const (
	metaFile  = "metadata.json"
	nodesFile = "nodes.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Number    int       `json:"number"`
	Mode      string    `json:"mode"`
	Format    string    `json:"format"`
	File      string    `json:"file"`
	Timestamp time.Time `json:"timestamp"`
	Nodes     int       `json:"nodes"`
	Title     string    `json:"title"`
}

// Node is one drawable scene node in world coordinates.
type Node struct {
	Kind   string
	Name   string
	X      float64
	Y      float64
	Z      float64
	Radius float64
	Color  string
}

// Save writes a new snapshot of root. write produces the artifact, which is
// stored as "snapshot.<format>". The returned metadata carries the new ID.
func (s *Store) Save(meta Metadata, root *scene.Node, write func(io.Writer) error) (Metadata, error) {
	meta.ID = fmt.Sprintf("%s_%s_%s", strings.ToLower(meta.Symbol), meta.Mode, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.File = "snapshot." + meta.Format

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Metadata{}, err
	}

	art, err := os.Create(filepath.Join(dir, meta.File))
	if err != nil {
		return Metadata{}, err
	}
	if err := write(art); err != nil {
		art.Close()
		return Metadata{}, err
	}
	if err := art.Close(); err != nil {
		return Metadata{}, err
	}

	nodes := collect(root)
	meta.Nodes = len(nodes)
	if err := writeNodes(filepath.Join(dir, nodesFile), nodes); err != nil {
		return Metadata{}, err
	}

	f, err := os.Create(filepath.Join(dir, metaFile))
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

func collect(root *scene.Node) []Node {
	var out []Node
	root.Walk(func(n *scene.Node) {
		if !n.Kind.Drawable() {
			return
		}
		p := n.WorldPosition()
		out = append(out, Node{
			Kind:   n.Kind.String(),
			Name:   n.Name,
			X:      p.X,
			Y:      p.Y,
			Z:      p.Z,
			Radius: n.Radius * n.WorldScale(),
			Color:  n.Color,
		})
	})
	return out
}

func writeNodes(path string, nodes []Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"kind", "name", "x", "y", "z", "radius", "color"}); err != nil {
		return err
	}
	for _, n := range nodes {
		row := []string{
			n.Kind,
			n.Name,
			strconv.FormatFloat(n.X, 'f', 6, 64),
			strconv.FormatFloat(n.Y, 'f', 6, 64),
			strconv.FormatFloat(n.Z, 'f', 6, 64),
			strconv.FormatFloat(n.Radius, 'f', 6, 64),
			n.Color,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	snaps := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.After(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Path is the artifact file of a snapshot.
func (s *Store) Path(meta *Metadata) string {
	return filepath.Join(s.baseDir, meta.ID, meta.File)
}

func (s *Store) LoadNodes(id string) ([]Node, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, nodesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Node{}, nil
	}

	nodes := make([]Node, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 7 {
			return nil, fmt.Errorf("storage: malformed node row %q", rec)
		}
		var vals [4]float64
		for i := range vals {
			v, err := strconv.ParseFloat(rec[2+i], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: node %s: %w", rec[1], err)
			}
			vals[i] = v
		}
		nodes = append(nodes, Node{
			Kind: rec[0], Name: rec[1],
			X: vals[0], Y: vals[1], Z: vals[2], Radius: vals[3],
			Color: rec[6],
		})
	}
	return nodes, nil
}
