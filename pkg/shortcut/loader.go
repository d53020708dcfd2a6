package shortcut

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unsafe"
)

const (
	columnarMagic   = "H3RTSHRT"
	columnarVersion = uint32(1)
)

type columnarHeader struct {
	Magic   [8]byte
	Version uint32
	Count   uint32
}

// LoadColumnar reads shortcut records from a single columnar file or a
// directory of them (in which case columns are concatenated across
// files before the store is built once), producing a built Store.
func LoadColumnar(path string, maxAllowedEdgeID uint32) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	var records []Record
	if info.IsDir() {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rs, err := readColumnarFile(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			records = append(records, rs...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		records, err = readColumnarFile(path)
		if err != nil {
			return nil, err
		}
	}

	return Build(records, maxAllowedEdgeID)
}

func readColumnarFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := crc32Reader{r: f, hash: crc32.NewIEEE()}
	r := &cr

	var hdr columnarHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrSchemaMismatch, err)
	}
	if string(hdr.Magic[:]) != columnarMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrSchemaMismatch, hdr.Magic)
	}
	if hdr.Version != columnarVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrSchemaMismatch, hdr.Version)
	}

	n := int(hdr.Count)
	fromEdge, err := readUint32Column(r, n)
	if err != nil {
		return nil, fmt.Errorf("read from_edge: %w", err)
	}
	toEdge, err := readUint32Column(r, n)
	if err != nil {
		return nil, fmt.Errorf("read to_edge: %w", err)
	}
	cost, err := readFloat32Column(r, n)
	if err != nil {
		return nil, fmt.Errorf("read cost: %w", err)
	}
	viaEdge, err := readUint32Column(r, n)
	if err != nil {
		return nil, fmt.Errorf("read via_edge: %w", err)
	}
	cell, err := readUint64Column(r, n)
	if err != nil {
		return nil, fmt.Errorf("read cell: %w", err)
	}
	inside, err := readInt8Column(r, n)
	if err != nil {
		return nil, fmt.Errorf("read inside: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read crc32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("%w: crc32 mismatch stored=%08x computed=%08x", ErrSchemaMismatch, storedCRC, expectedCRC)
	}

	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = NewRecord(fromEdge[i], toEdge[i], cost[i], cell[i], viaEdge[i], int8(inside[i]))
	}
	return records, nil
}

// WriteColumnar writes records as a single columnar file; tests use it
// to construct fixtures.
func WriteColumnar(path string, records []Record) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := crc32Writer{w: f, hash: crc32.NewIEEE()}
	w := &cw

	hdr := columnarHeader{Version: columnarVersion, Count: uint32(len(records))}
	copy(hdr.Magic[:], columnarMagic)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	fromEdge := make([]uint32, len(records))
	toEdge := make([]uint32, len(records))
	cost := make([]float32, len(records))
	viaEdge := make([]uint32, len(records))
	cell := make([]uint64, len(records))
	inside := make([]int8, len(records))
	for i, r := range records {
		fromEdge[i] = r.From
		toEdge[i] = r.To
		cost[i] = r.Cost
		viaEdge[i] = r.ViaEdge()
		cell[i] = r.Cell
		inside[i] = r.Inside()
	}

	if err := writeUint32Column(w, fromEdge); err != nil {
		return fmt.Errorf("write from_edge: %w", err)
	}
	if err := writeUint32Column(w, toEdge); err != nil {
		return fmt.Errorf("write to_edge: %w", err)
	}
	if err := writeFloat32Column(w, cost); err != nil {
		return fmt.Errorf("write cost: %w", err)
	}
	if err := writeUint32Column(w, viaEdge); err != nil {
		return fmt.Errorf("write via_edge: %w", err)
	}
	if err := writeUint64Column(w, cell); err != nil {
		return fmt.Errorf("write cell: %w", err)
	}
	if err := writeInt8Column(w, inside); err != nil {
		return fmt.Errorf("write inside: %w", err)
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write crc32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Zero-copy column I/O, the same unsafe.Slice idiom used for the CH
// binary graph format.

func writeUint32Column(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeUint64Column(w io.Writer, s []uint64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func writeFloat32Column(w io.Writer, s []float32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeInt8Column(w io.Writer, s []int8) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	_, err := w.Write(b)
	return err
}

func readUint32Column(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	_, err := io.ReadFull(r, b)
	return s, err
}

func readUint64Column(r io.Reader, n int) ([]uint64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	_, err := io.ReadFull(r, b)
	return s, err
}

func readFloat32Column(r io.Reader, n int) ([]float32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]float32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	_, err := io.ReadFull(r, b)
	return s, err
}

func readInt8Column(r io.Reader, n int) ([]int8, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]int8, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n)
	_, err := io.ReadFull(r, b)
	return s, err
}

// crc32Writer/crc32Reader wrap an io.Writer/io.Reader, accumulating a
// running CRC32 checksum alongside the underlying transfer.

type crc32Writer struct {
	w    io.Writer
	hash hashSum32
}

type hashSum32 interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash hashSum32
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
