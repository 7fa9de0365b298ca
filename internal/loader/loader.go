// Package loader reads the packed CSR binary files a manifest.Manifest
// points at into csr.Graph values, validating them against the design's
// invariants before the engine ever touches them (4.L / §7: loader
// errors are detected before the core runs).
package loader

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/kerr"
	"github.com/dreamware/kaspan/internal/manifest"
)

// Graphs is the full directed graph loaded from one manifest: the
// complete, unpartitioned forward and backward CSRs, ready to be sliced
// by a partition.Scheme.
type Graphs struct {
	Fw csr.Graph[int64, int64]
	Bw csr.Graph[int64, int64]
}

// Load reads the manifest at manifestPath and both of its CSR pairs.
func Load(manifestPath string) (*Graphs, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(manifestPath)

	fwHead, err := readPacked(filepath.Join(dir, m.FwHeadPath), m.HeadBytes, m.Endian, m.NodeCount+1)
	if err != nil {
		return nil, err
	}
	fwAdj, err := readPacked(filepath.Join(dir, m.FwCSRPath), m.CSRBytes, m.Endian, m.EdgeCount)
	if err != nil {
		return nil, err
	}
	bwHead, err := readPacked(filepath.Join(dir, m.BwHeadPath), m.HeadBytes, m.Endian, m.NodeCount+1)
	if err != nil {
		return nil, err
	}
	bwAdj, err := readPacked(filepath.Join(dir, m.BwCSRPath), m.CSRBytes, m.Endian, m.EdgeCount)
	if err != nil {
		return nil, err
	}

	fw := csr.New(m.NodeCount, m.EdgeCount, fwHead, fwAdj)
	if err := fw.Validate(); err != nil {
		return nil, err
	}
	bw := csr.New(m.NodeCount, m.EdgeCount, bwHead, bwAdj)
	if err := bw.Validate(); err != nil {
		return nil, err
	}

	return &Graphs{Fw: fw, Bw: bw}, nil
}

// readPacked reads count fixed-width unsigned integers of the given byte
// width and endianness from path.
func readPacked(path string, width int, endian string, count int64) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kerr.Wrap(kerr.IO, "loader.readPacked", err)
	}
	defer f.Close()

	buf := make([]byte, width)
	out := make([]int64, count)
	for i := int64(0); i < count; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return nil, kerr.New(kerr.IO, "loader.readPacked", "reading %s entry %d: %v", path, i, err)
		}
		out[i] = int64(decode(buf, endian))
	}
	return out, nil
}

// decode unpacks a fixed-width integer of 1..8 bytes from buf.
func decode(buf []byte, endian string) uint64 {
	var v uint64
	if endian == "big" {
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
		return v
	}
	full := make([]byte, 8)
	copy(full, buf)
	return binary.LittleEndian.Uint64(full)
}
