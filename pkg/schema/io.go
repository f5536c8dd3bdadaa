package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/grid"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath picks a format from the file extension. Anything other than
// .toml is treated as JSON.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// =============================================================================
// Public API
// =============================================================================

// ReadFile opens path and decodes it according to its extension.
func ReadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}

// Read decodes a schema in the given format from r.
func Read(r io.Reader, format string) (*Schema, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatTOML:
		return readTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (must be json or toml)", format)
	}
}

// Unmarshal decodes JSON bytes into a schema.
func Unmarshal(data []byte) (*Schema, error) {
	return readJSON(bytes.NewReader(data))
}

// Marshal encodes s as indented JSON. Output is deterministic.
func Marshal(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes s as JSON to w.
func Write(s *Schema, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(toDocument(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes s as JSON to path with 0644 permissions.
func WriteFile(s *Schema, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// =============================================================================
// JSON
// =============================================================================

// document mirrors the editor's on-disk JSON layout.
type document struct {
	Cols            int             `json:"cols"`
	Rows            int             `json:"rows"`
	Nodes           map[string]node `json:"nodes"`
	AdjacencyMatrix Matrix          `json:"adjacency_matrix"`
	Directives      []Directive     `json:"directives,omitempty"`
}

type node struct {
	ElementNumber int `json:"element_number"`
	GridPosition  int `json:"grid_position"`
}

func readJSON(r io.Reader) (*Schema, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	p := make(Placement, len(doc.Nodes))
	for _, n := range doc.Nodes {
		// Position 0 marks an element the editor has not placed yet.
		if n.GridPosition == 0 {
			continue
		}
		p[n.ElementNumber] = n.GridPosition
	}
	return &Schema{
		Grid:       grid.New(doc.Rows, doc.Cols),
		Matrix:     doc.AdjacencyMatrix,
		Placement:  p,
		Directives: doc.Directives,
	}, nil
}

func toDocument(s *Schema) document {
	nodes := make(map[string]node, len(s.Placement))
	for e, pos := range s.Placement {
		nodes[strconv.Itoa(e)] = node{ElementNumber: e, GridPosition: pos}
	}
	m := s.Matrix
	if m == nil {
		m = Matrix{}
	}
	return document{
		Cols:            s.Grid.Cols,
		Rows:            s.Grid.Rows,
		Nodes:           nodes,
		AdjacencyMatrix: m,
		Directives:      s.Directives,
	}
}

// =============================================================================
// TOML
// =============================================================================

// tomlDocument is the hand-written problem format:
//
//	rows = 3
//	cols = 1
//	matrix = [[0, 1, 0], [1, 0, 1], [0, 1, 0]]
//
//	[[directive]]
//	element = 2
//	position = 2
type tomlDocument struct {
	Rows       int         `toml:"rows"`
	Cols       int         `toml:"cols"`
	Matrix     [][]int     `toml:"matrix"`
	Nodes      []tomlNode  `toml:"node"`
	Directives []Directive `toml:"directive"`
}

type tomlNode struct {
	Element  int `toml:"element"`
	Position int `toml:"position"`
}

func readTOML(r io.Reader) (*Schema, error) {
	var doc tomlDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	p := make(Placement, len(doc.Nodes))
	for _, n := range doc.Nodes {
		p[n.Element] = n.Position
	}
	return &Schema{
		Grid:       grid.New(doc.Rows, doc.Cols),
		Matrix:     Matrix(doc.Matrix),
		Placement:  p,
		Directives: doc.Directives,
	}, nil
}
