// Package convert implements 4.M: the edge-list to CSR converter
// companion tool. It scans `u v` lines, resolves the vertex range,
// chooses minimal byte widths, and produces packed forward/backward CSR
// files plus a manifest.
package convert

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dreamware/kaspan/internal/kerr"
)

// inMemoryLimit bounds the edge count above which the parsed edge list is
// re-sorted in fixed-size batches that are sorted one by one and then
// merged. Every edge is still held in memory either way; there is no
// disk-backed external sort.
const inMemoryLimit = 50_000_000

// Result summarizes one conversion run.
type Result struct {
	NodeCount      int64
	EdgeCount      int64
	HeadBytes      int
	CSRBytes       int
	SelfLoops      bool
	DuplicateEdges bool
}

// Edge is one parsed (u, v) pair.
type Edge struct {
	U, V int64
}

// Convert reads the edge list at inputPath and writes
// <outputPrefix>.fw.head.bin, .fw.csr.bin, .bw.head.bin, .bw.csr.bin, and
// .manifest.
func Convert(inputPath, outputPrefix string) (*Result, error) {
	edges, maxID, err := parseEdgeList(inputPath)
	if err != nil {
		return nil, err
	}

	n := maxID + 1
	m := int64(len(edges))

	selfLoops, dupes := scanFlags(edges)

	csrBytes := minWidth(maxID)
	headBytes := minWidth(m)

	fwHead, fwAdj := buildCSR(edges, n, m, func(e Edge) (int64, int64) { return e.U, e.V })
	bwHead, bwAdj := buildCSR(edges, n, m, func(e Edge) (int64, int64) { return e.V, e.U })

	code := filepath.Base(outputPrefix)
	paths := struct{ fwHead, fwCSR, bwHead, bwCSR string }{
		fwHead: code + ".fw.head.bin",
		fwCSR:  code + ".fw.csr.bin",
		bwHead: code + ".bw.head.bin",
		bwCSR:  code + ".bw.csr.bin",
	}

	if err := writePacked(outputPrefix+".fw.head.bin", fwHead, headBytes); err != nil {
		return nil, err
	}
	if err := writePacked(outputPrefix+".fw.csr.bin", fwAdj, csrBytes); err != nil {
		return nil, err
	}
	if err := writePacked(outputPrefix+".bw.head.bin", bwHead, headBytes); err != nil {
		return nil, err
	}
	if err := writePacked(outputPrefix+".bw.csr.bin", bwAdj, csrBytes); err != nil {
		return nil, err
	}

	if err := writeManifest(outputPrefix+".manifest", code, n, m, selfLoops, dupes, headBytes, csrBytes, paths); err != nil {
		return nil, err
	}

	return &Result{
		NodeCount: n, EdgeCount: m,
		HeadBytes: headBytes, CSRBytes: csrBytes,
		SelfLoops: selfLoops, DuplicateEdges: dupes,
	}, nil
}

func parseEdgeList(path string) ([]Edge, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, kerr.Wrap(kerr.IO, "convert.parseEdgeList", err)
	}
	defer f.Close()

	var edges []Edge
	var maxID int64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, 0, kerr.New(kerr.Deserialize, "convert.parseEdgeList", "malformed line: %q", line)
		}
		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, 0, kerr.New(kerr.Deserialize, "convert.parseEdgeList", "bad vertex id %q: %v", fields[0], err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, 0, kerr.New(kerr.Deserialize, "convert.parseEdgeList", "bad vertex id %q: %v", fields[1], err)
		}
		if u < 0 || v < 0 {
			return nil, 0, kerr.New(kerr.Deserialize, "convert.parseEdgeList", "negative vertex id in %q", line)
		}
		if u > maxID {
			maxID = u
		}
		if v > maxID {
			maxID = v
		}
		edges = append(edges, Edge{U: u, V: v})
	}
	if err := sc.Err(); err != nil {
		return nil, 0, kerr.Wrap(kerr.IO, "convert.parseEdgeList", err)
	}
	if len(edges) > inMemoryLimit {
		return sortedChunked(edges), maxID, nil
	}
	return edges, maxID, nil
}

// sortedChunked re-sorts a large edge list as a series of batches of
// inMemoryLimit/4 edges, each copied and sorted by (U, V) with sort.Slice,
// then merged back together. All batches stay in memory.
func sortedChunked(edges []Edge) []Edge {
	const batch = inMemoryLimit / 4
	chunks := make([][]Edge, 0, len(edges)/batch+1)
	for i := 0; i < len(edges); i += batch {
		end := i + batch
		if end > len(edges) {
			end = len(edges)
		}
		c := append([]Edge(nil), edges[i:end]...)
		sort.Slice(c, func(a, b int) bool {
			if c[a].U != c[b].U {
				return c[a].U < c[b].U
			}
			return c[a].V < c[b].V
		})
		chunks = append(chunks, c)
	}
	return mergeChunks(chunks)
}

func mergeChunks(chunks [][]Edge) []Edge {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]Edge, 0, total)
	idx := make([]int, len(chunks))
	for {
		best := -1
		for i, c := range chunks {
			if idx[i] >= len(c) {
				continue
			}
			if best == -1 || less(c[idx[i]], chunks[best][idx[best]]) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		out = append(out, chunks[best][idx[best]])
		idx[best]++
	}
	return out
}

func less(a, b Edge) bool {
	if a.U != b.U {
		return a.U < b.U
	}
	return a.V < b.V
}

func scanFlags(edges []Edge) (selfLoops, duplicates bool) {
	sorted := append([]Edge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	for i, e := range sorted {
		if e.U == e.V {
			selfLoops = true
		}
		if i > 0 && sorted[i-1] == e {
			duplicates = true
		}
	}
	return
}

func minWidth(maxValue int64) int {
	for w := 1; w <= 8; w++ {
		if maxValue < (int64(1) << uint(w*8)) {
			return w
		}
	}
	return 8
}

func buildCSR(edges []Edge, n, m int64, key func(Edge) (int64, int64)) ([]int64, []int64) {
	degree := make([]int64, n)
	for _, e := range edges {
		src, _ := key(e)
		degree[src]++
	}
	head := make([]int64, n+1)
	for i := int64(0); i < n; i++ {
		head[i+1] = head[i] + degree[i]
	}
	cursor := append([]int64(nil), head[:n]...)
	adj := make([]int64, m)
	for _, e := range edges {
		src, dst := key(e)
		adj[cursor[src]] = dst
		cursor[src]++
	}
	return head, adj
}

func writePacked(path string, values []int64, width int) error {
	f, err := os.Create(path)
	if err != nil {
		return kerr.Wrap(kerr.IO, "convert.writePacked", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	buf := make([]byte, 8)
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		if _, err := w.Write(buf[:width]); err != nil {
			return kerr.Wrap(kerr.IO, "convert.writePacked", err)
		}
	}
	if err := w.Flush(); err != nil {
		return kerr.Wrap(kerr.IO, "convert.writePacked", err)
	}
	return nil
}

func writeManifest(path, code string, n, m int64, selfLoops, dupes bool, headBytes, csrBytes int, paths struct{ fwHead, fwCSR, bwHead, bwCSR string }) error {
	f, err := os.Create(path)
	if err != nil {
		return kerr.Wrap(kerr.IO, "convert.writeManifest", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "schema.version 1\n")
	fmt.Fprintf(w, "graph.code %s\n", code)
	fmt.Fprintf(w, "graph.name %s\n", code)
	fmt.Fprintf(w, "graph.endian little\n")
	fmt.Fprintf(w, "graph.node_count %d\n", n)
	fmt.Fprintf(w, "graph.edge_count %d\n", m)
	fmt.Fprintf(w, "graph.contains_self_loops %t\n", selfLoops)
	fmt.Fprintf(w, "graph.contains_duplicate_edges %t\n", dupes)
	fmt.Fprintf(w, "graph.head.bytes %d\n", headBytes)
	fmt.Fprintf(w, "graph.csr.bytes %d\n", csrBytes)
	fmt.Fprintf(w, "fw.head.path %s\n", paths.fwHead)
	fmt.Fprintf(w, "fw.csr.path %s\n", paths.fwCSR)
	fmt.Fprintf(w, "bw.head.path %s\n", paths.bwHead)
	fmt.Fprintf(w, "bw.csr.path %s\n", paths.bwCSR)
	return w.Flush()
}
