package graph

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

type FileType string

const (
	// FileTypeCSV is a dense adjacency matrix with a leading label row and column.
	FileTypeCSV FileType = "csv"
	// FileTypeEdgeList is a whitespace separated "u v" edge per line.
	FileTypeEdgeList FileType = "txt"
)

var ErrUnknownFileType = errors.New("unknown file type")

// ParseFileType validates the file type selector.
func ParseFileType(s string) (FileType, error) {
	switch FileType(s) {
	case FileTypeCSV, FileTypeEdgeList:
		return FileType(s), nil
	default:
		return "", fmt.Errorf("%w %q, expected one of %q or %q", ErrUnknownFileType, s, FileTypeCSV, FileTypeEdgeList)
	}
}

// FormatError reports malformed graph input. Line is 0 when the problem is not
// bound to a single line.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Source describes where a graph was loaded from.
type Source struct {
	Path     string
	FileType FileType
	// Fingerprint is the hex encoded BLAKE2b-256 sum of the raw file content.
	Fingerprint string
}

// Load reads the graph at path. Compressed files are decompressed transparently.
func Load(ctx context.Context, fileType FileType, path string) (*Graph, *Source, error) {
	if _, err := ParseFileType(string(fileType)); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	sum := blake2b.Sum256(data)
	source := &Source{
		Path:        path,
		FileType:    fileType,
		Fingerprint: hex.EncodeToString(sum[:]),
	}

	reader, err := decompress(ctx, path, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	var g *Graph
	switch fileType {
	case FileTypeCSV:
		g, err = ReadCSV(path, reader)
	case FileTypeEdgeList:
		g, err = ReadEdgeList(path, reader)
	}
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("Loaded %s from %s.", g, path)
	return g, source, nil
}

func decompress(ctx context.Context, path string, stream io.Reader) (io.ReadCloser, error) {
	format, stream, err := archives.Identify(ctx, path, stream)
	if errors.Is(err, archives.NoMatch) {
		return io.NopCloser(stream), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to identify format of %s: %v", path, err)
	}
	decomp, ok := format.(archives.Decompressor)
	if !ok {
		return nil, &FormatError{Path: path, Msg: fmt.Sprintf("unsupported container format %s", format.Extension())}
	}
	logrus.Debugf("Decompressing %s as %s.", path, format.Extension())
	rc, err := decomp.OpenReader(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %v", path, err)
	}
	return rc, nil
}

// ReadEdgeList parses lines of "u v" integer pairs. Blank lines and '#' comments
// are skipped, self loops only register the node. Nodes are ordered ascending.
func ReadEdgeList(path string, r io.Reader) (*Graph, error) {
	ug := simple.NewUndirectedGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("expected 2 node ids, got %d fields", len(fields))}
		}
		var ids [2]int64
		for k, f := range fields {
			id, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("node id %q is not an integer", f)}
			}
			ids[k] = id
		}
		if ids[0] == ids[1] {
			logrus.Debugf("Ignoring self loop on node %d in line %d.", ids[0], line)
			if ug.Node(ids[0]) == nil {
				ug.AddNode(simple.Node(ids[0]))
			}
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(ids[0]), simple.Node(ids[1])))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	var ids []int64
	nodes := ug.Nodes()
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	if len(ids) == 0 {
		return nil, &FormatError{Path: path, Msg: "edge list contains no nodes"}
	}
	slices.Sort(ids)

	index := make(map[int64]int, len(ids))
	labels := make([]string, len(ids))
	for i, id := range ids {
		index[id] = i
		labels[i] = strconv.FormatInt(id, 10)
	}
	adj := mat.NewSymDense(len(ids), nil)
	edges := ug.Edges()
	for edges.Next() {
		e := edges.Edge()
		adj.SetSym(index[e.From().ID()], index[e.To().ID()], 1)
	}
	return New(labels, adj)
}

// ReadCSV parses a dense adjacency matrix. The first row and the first column
// hold labels and are dropped. The remaining table must be square, symmetric
// and binary.
func ReadCSV(path string, r io.Reader) (*Graph, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &FormatError{Path: path, Line: parseErr.Line, Msg: parseErr.Err.Error()}
		}
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	if len(records) < 2 {
		return nil, &FormatError{Path: path, Msg: "matrix contains no nodes"}
	}
	header, rows := records[0], records[1:]
	n := len(rows)
	if len(header)-1 != n {
		return nil, &FormatError{Path: path, Msg: fmt.Sprintf("matrix is not square: %d rows and %d columns", n, len(header)-1)}
	}

	labels := make([]string, n)
	for i, l := range header[1:] {
		labels[i] = strings.TrimSpace(l)
		if labels[i] == "" {
			labels[i] = strings.TrimSpace(rows[i][0])
		}
		if labels[i] == "" {
			labels[i] = strconv.Itoa(i + 1)
		}
	}

	values := make([]float64, n*n)
	for i, row := range rows {
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || (v != 0 && v != 1) {
				return nil, &FormatError{Path: path, Line: i + 2, Msg: fmt.Sprintf("value %q in column %d is not 0 or 1", cell, j+2)}
			}
			values[i*n+j] = v
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if values[i*n+j] != values[j*n+i] {
				return nil, &FormatError{Path: path, Line: i + 2, Msg: fmt.Sprintf("matrix is not symmetric between %s and %s", labels[i], labels[j])}
			}
		}
	}
	g, err := New(labels, mat.NewSymDense(n, values))
	if err != nil {
		return nil, &FormatError{Path: path, Msg: err.Error()}
	}
	return g, nil
}

// WriteEdgeList writes g in the edge list format. Isolated nodes are written as
// self loops so that reading the output back yields the same node set.
func WriteEdgeList(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < g.Len(); i++ {
		isolated := true
		for j := 0; j < g.Len(); j++ {
			if j != i && g.Adjacent(i, j) {
				isolated = false
				if j > i {
					if _, err := fmt.Fprintf(bw, "%s %s\n", g.Label(i), g.Label(j)); err != nil {
						return err
					}
				}
			}
		}
		if isolated {
			if _, err := fmt.Fprintf(bw, "%s %s\n", g.Label(i), g.Label(i)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
