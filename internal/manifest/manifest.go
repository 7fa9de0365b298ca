// Package manifest parses the on-disk graph manifest (4.L / §6): a text
// key/value file describing a graph's CSR files and byte widths.
package manifest

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dreamware/kaspan/internal/kerr"
)

// Manifest is the parsed form of a <code>.manifest file.
type Manifest struct {
	SchemaVersion int
	Code          string
	Name          string
	Endian        string // "little" or "big"
	NodeCount     int64
	EdgeCount     int64
	SelfLoops     bool
	DuplicateEdges bool
	HeadBytes     int
	CSRBytes      int

	FwHeadPath string
	FwCSRPath  string
	BwHeadPath string
	BwCSRPath  string
}

var requiredKeys = []string{
	"schema.version", "graph.code", "graph.name", "graph.endian",
	"graph.node_count", "graph.edge_count",
	"graph.contains_self_loops", "graph.contains_duplicate_edges",
	"graph.head.bytes", "graph.csr.bytes",
	"fw.head.path", "fw.csr.path", "bw.head.path", "bw.csr.path",
}

// Load reads and parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kerr.Wrap(kerr.IO, "manifest.Load", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads key/value pairs from r, one `key value` per non-blank,
// non-`%`-prefixed line.
func Parse(r io.Reader) (*Manifest, error) {
	kv := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "malformed line: %q", line)
		}
		kv[fields[0]] = strings.TrimSpace(fields[1])
	}
	if err := sc.Err(); err != nil {
		return nil, kerr.Wrap(kerr.IO, "manifest.Parse", err)
	}

	for _, k := range requiredKeys {
		if _, ok := kv[k]; !ok {
			return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "missing required key %q", k)
		}
	}

	m := &Manifest{
		Code:       kv["graph.code"],
		Name:       kv["graph.name"],
		Endian:     kv["graph.endian"],
		FwHeadPath: kv["fw.head.path"],
		FwCSRPath:  kv["fw.csr.path"],
		BwHeadPath: kv["bw.head.path"],
		BwCSRPath:  kv["bw.csr.path"],
	}

	var err error
	if m.SchemaVersion, err = strconv.Atoi(kv["schema.version"]); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "schema.version: %v", err)
	}
	if m.NodeCount, err = strconv.ParseInt(kv["graph.node_count"], 10, 64); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.node_count: %v", err)
	}
	if m.EdgeCount, err = strconv.ParseInt(kv["graph.edge_count"], 10, 64); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.edge_count: %v", err)
	}
	if m.SelfLoops, err = strconv.ParseBool(kv["graph.contains_self_loops"]); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.contains_self_loops: %v", err)
	}
	if m.DuplicateEdges, err = strconv.ParseBool(kv["graph.contains_duplicate_edges"]); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.contains_duplicate_edges: %v", err)
	}
	if m.HeadBytes, err = strconv.Atoi(kv["graph.head.bytes"]); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.head.bytes: %v", err)
	}
	if m.CSRBytes, err = strconv.Atoi(kv["graph.csr.bytes"]); err != nil {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.csr.bytes: %v", err)
	}

	if m.Endian != "little" && m.Endian != "big" {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.endian must be little or big, got %q", m.Endian)
	}
	if m.HeadBytes < 1 || m.HeadBytes > 8 {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.head.bytes out of range [1,8]: %d", m.HeadBytes)
	}
	if m.CSRBytes < 1 || m.CSRBytes > 8 {
		return nil, kerr.New(kerr.Deserialize, "manifest.Parse", "graph.csr.bytes out of range [1,8]: %d", m.CSRBytes)
	}

	return m, nil
}
