package ch

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"unsafe"
)

// Two on-disk forms are supported, following the teacher's binary format
// (magic, version, CRC32 trailer, unsafe.Slice zero-copy array I/O)
// generalized to this package's graph:
//
//   - WriteFastGraph/ReadFastGraph: the native form, whose length prefixes
//     are uint64 and so never overflow on any platform this module targets.
//   - WriteFastGraph32/ReadFastGraph32: the 32-bit-normalized form, whose
//     length prefixes are uint32 for compact, cross-platform-portable
//     files. Writing fails loudly with ErrGraphSizeOverflow rather than
//     silently truncating if a graph's edge count doesn't fit.
const (
	magicNative = "CHGRAPH\x00"
	magic32     = "CHGR32\x00\x00"
	formatVersion = uint32(1)
)

// WriteFastGraph writes fg in the native (uint64-length-prefixed) form.
func WriteFastGraph(w io.Writer, fg *FastGraph) error {
	return writeFastGraph(w, fg, magicNative, false)
}

// ReadFastGraph reads a FastGraph written by WriteFastGraph.
func ReadFastGraph(r io.Reader) (*FastGraph, error) {
	return readFastGraph(r, magicNative, false)
}

// WriteFastGraph32 writes fg in the 32-bit-normalized form. It returns
// ErrGraphSizeOverflow instead of writing a file that can't round-trip
// exactly if any edge array exceeds math.MaxUint32 entries.
func WriteFastGraph32(w io.Writer, fg *FastGraph) error {
	if len(fg.FwdEdges) > math.MaxUint32 || len(fg.BwdEdges) > math.MaxUint32 {
		return ErrGraphSizeOverflow
	}
	return writeFastGraph(w, fg, magic32, true)
}

// ReadFastGraph32 reads a FastGraph written by WriteFastGraph32.
func ReadFastGraph32(r io.Reader) (*FastGraph, error) {
	return readFastGraph(r, magic32, true)
}

func writeFastGraph(w io.Writer, fg *FastGraph, magic string, narrow bool) error {
	cw := &crc32Writer{w: w, hash: crc32.NewIEEE()}

	var magicBuf [8]byte
	copy(magicBuf[:], magic)
	if _, err := cw.Write(magicBuf[:]); err != nil {
		return fmt.Errorf("ch: write magic: %w", err)
	}
	if err := binary.Write(cw, binary.LittleEndian, formatVersion); err != nil {
		return fmt.Errorf("ch: write version: %w", err)
	}
	if err := binary.Write(cw, binary.LittleEndian, fg.NumNodes); err != nil {
		return fmt.Errorf("ch: write NumNodes: %w", err)
	}

	if err := writeCountedRanks(cw, fg.Ranks, narrow); err != nil {
		return fmt.Errorf("ch: write Ranks: %w", err)
	}
	if err := writeUint32Slice(cw, fg.FwdFirstOut); err != nil {
		return fmt.Errorf("ch: write FwdFirstOut: %w", err)
	}
	if err := writeCountedEdges(cw, fg.FwdEdges, narrow); err != nil {
		return fmt.Errorf("ch: write FwdEdges: %w", err)
	}
	if err := writeUint32Slice(cw, fg.BwdFirstOut); err != nil {
		return fmt.Errorf("ch: write BwdFirstOut: %w", err)
	}
	if err := writeCountedEdges(cw, fg.BwdEdges, narrow); err != nil {
		return fmt.Errorf("ch: write BwdEdges: %w", err)
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(w, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("ch: write CRC32: %w", err)
	}
	return nil
}

func readFastGraph(r io.Reader, wantMagic string, narrow bool) (*FastGraph, error) {
	cr := &crc32Reader{r: r, hash: crc32.NewIEEE()}

	var magicBuf [8]byte
	if _, err := io.ReadFull(cr, magicBuf[:]); err != nil {
		return nil, fmt.Errorf("ch: read magic: %w", err)
	}
	var want [8]byte
	copy(want[:], wantMagic)
	if magicBuf != want {
		return nil, fmt.Errorf("ch: bad magic %q, want %q", magicBuf, want)
	}
	var version uint32
	if err := binary.Read(cr, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("ch: read version: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("ch: unsupported format version %d", version)
	}

	fg := &FastGraph{}
	if err := binary.Read(cr, binary.LittleEndian, &fg.NumNodes); err != nil {
		return nil, fmt.Errorf("ch: read NumNodes: %w", err)
	}

	var err error
	if fg.Ranks, err = readCountedRanks(cr, narrow); err != nil {
		return nil, fmt.Errorf("ch: read Ranks: %w", err)
	}
	if fg.FwdFirstOut, err = readUint32Slice(cr, int(fg.NumNodes)+1); err != nil {
		return nil, fmt.Errorf("ch: read FwdFirstOut: %w", err)
	}
	if fg.FwdEdges, err = readCountedEdges(cr, narrow); err != nil {
		return nil, fmt.Errorf("ch: read FwdEdges: %w", err)
	}
	if fg.BwdFirstOut, err = readUint32Slice(cr, int(fg.NumNodes)+1); err != nil {
		return nil, fmt.Errorf("ch: read BwdFirstOut: %w", err)
	}
	if fg.BwdEdges, err = readCountedEdges(cr, narrow); err != nil {
		return nil, fmt.Errorf("ch: read BwdEdges: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(r, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("ch: read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("ch: CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	if err := validateFastGraphCSR(fg); err != nil {
		return nil, fmt.Errorf("ch: invalid graph: %w", err)
	}
	return fg, nil
}

func validateFastGraphCSR(fg *FastGraph) error {
	n := int(fg.NumNodes)
	if len(fg.FwdFirstOut) != n+1 || len(fg.BwdFirstOut) != n+1 {
		return fmt.Errorf("FirstOut length mismatch for %d nodes", n)
	}
	if int(fg.FwdFirstOut[n]) != len(fg.FwdEdges) || int(fg.BwdFirstOut[n]) != len(fg.BwdEdges) {
		return fmt.Errorf("edge array length does not match FirstOut[NumNodes]")
	}
	for i := 1; i <= n; i++ {
		if fg.FwdFirstOut[i] < fg.FwdFirstOut[i-1] || fg.BwdFirstOut[i] < fg.BwdFirstOut[i-1] {
			return fmt.Errorf("FirstOut not monotonic at %d", i)
		}
	}
	return nil
}

func writeCountLen(w io.Writer, n int, narrow bool) error {
	if narrow {
		if n > math.MaxUint32 {
			return ErrGraphSizeOverflow
		}
		return binary.Write(w, binary.LittleEndian, uint32(n))
	}
	return binary.Write(w, binary.LittleEndian, uint64(n))
}

func readCountLen(r io.Reader, narrow bool) (int, error) {
	if narrow {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return 0, err
		}
		return int(n), nil
	}
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func writeCountedRanks(w io.Writer, ranks []NodeID, narrow bool) error {
	if err := writeCountLen(w, len(ranks), narrow); err != nil {
		return err
	}
	return writeUint32Slice(w, ranksAsUint32(ranks))
}

func readCountedRanks(r io.Reader, narrow bool) ([]NodeID, error) {
	n, err := readCountLen(r, narrow)
	if err != nil {
		return nil, err
	}
	raw, err := readUint32Slice(r, n)
	if err != nil {
		return nil, err
	}
	return uint32AsRanks(raw), nil
}

func writeCountedEdges(w io.Writer, edges []FastGraphEdge, narrow bool) error {
	if err := writeCountLen(w, len(edges), narrow); err != nil {
		return err
	}
	for _, e := range edges {
		if err := binary.Write(w, binary.LittleEndian, e.BaseNode); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.AdjNode); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.Weight); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.Center); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.ReplacedIn); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.ReplacedOut); err != nil {
			return err
		}
	}
	return nil
}

func readCountedEdges(r io.Reader, narrow bool) ([]FastGraphEdge, error) {
	n, err := readCountLen(r, narrow)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	edges := make([]FastGraphEdge, n)
	for i := range edges {
		if err := binary.Read(r, binary.LittleEndian, &edges[i].BaseNode); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &edges[i].AdjNode); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &edges[i].Weight); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &edges[i].Center); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &edges[i].ReplacedIn); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &edges[i].ReplacedOut); err != nil {
			return nil, err
		}
	}
	return edges, nil
}

func ranksAsUint32(ranks []NodeID) []uint32 {
	if len(ranks) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&ranks[0])), len(ranks))
}

func uint32AsRanks(raw []uint32) []NodeID {
	if len(raw) == 0 {
		return nil
	}
	return unsafe.Slice((*NodeID)(unsafe.Pointer(&raw[0])), len(raw))
}

// Zero-copy slice I/O, following the teacher's pkg/graph/binary.go.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n <= 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// crc32Writer/crc32Reader tee every byte through a running checksum so the
// trailer written after the payload covers exactly what was written/read.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
