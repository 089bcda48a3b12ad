package embedding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unsafe"
)

var tableMagic = [4]byte{'S', 'M', 'T', 'L'}

const (
	tableVersion uint16 = 1
	headerSize          = 24

	maxDimension = math.MaxUint16
	maxWordBytes = math.MaxUint16
)

// tableHeader precedes the vector block. Its size keeps the vectors 4-byte
// aligned so mapped files can be viewed as []float32 in place.
type tableHeader struct {
	Magic     [4]byte
	Version   uint16
	Dimension uint16
	Count     uint32
	WordBytes uint32
	_         [8]byte
}

// Header describes a stored table.
type Header struct {
	Version   uint16
	Dimension int
	Count     int
}

// Header returns the on-disk header fields for t.
func (t *Table) Header() Header {
	return Header{Version: tableVersion, Dimension: t.dimension, Count: len(t.words)}
}

// WriteTo encodes the table:
//
//	header | count*dimension float32 (little endian) | count × (u16 len | word)
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	wordBytes := 0
	for _, word := range t.words {
		wordBytes += 2 + len(word)
	}
	hdr := tableHeader{
		Magic:     tableMagic,
		Version:   tableVersion,
		Dimension: uint16(t.dimension),
		Count:     uint32(len(t.words)),
		WordBytes: uint32(wordBytes),
	}
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return cw.n, err
	}
	if err := binary.Write(cw, binary.LittleEndian, t.data); err != nil {
		return cw.n, fmt.Errorf("embedding: write vectors: %w", err)
	}
	var lenBuf [2]byte
	for _, word := range t.words {
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(word)))
		if _, err := cw.Write(lenBuf[:]); err != nil {
			return cw.n, fmt.Errorf("embedding: write words: %w", err)
		}
		if _, err := io.WriteString(cw, word); err != nil {
			return cw.n, fmt.Errorf("embedding: write words: %w", err)
		}
	}
	return cw.n, bw.Flush()
}

// Marshal encodes the table into a byte slice.
func (t *Table) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a table from data. The table aliases data on little
// endian hosts, so data must not be modified afterwards.
func Unmarshal(data []byte) (*Table, error) {
	return decodeTable(data)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func readHeader(data []byte) (tableHeader, error) {
	var hdr tableHeader
	if len(data) < headerSize {
		return hdr, fmt.Errorf("embedding: file too small for header")
	}
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &hdr); err != nil {
		return hdr, err
	}
	if hdr.Magic != tableMagic {
		return hdr, fmt.Errorf("embedding: invalid magic: %q", hdr.Magic)
	}
	if hdr.Version != tableVersion {
		return hdr, fmt.Errorf("embedding: unsupported version %d", hdr.Version)
	}
	if hdr.Dimension == 0 {
		return hdr, fmt.Errorf("embedding: zero dimension")
	}
	return hdr, nil
}

func decodeTable(data []byte) (*Table, error) {
	hdr, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	count := int(hdr.Count)
	dim := int(hdr.Dimension)
	vecBytes := count * dim * 4
	wordsOff := headerSize + vecBytes
	if len(data) < wordsOff+int(hdr.WordBytes) {
		return nil, fmt.Errorf("embedding: truncated table: have %d bytes, need %d", len(data), wordsOff+int(hdr.WordBytes))
	}

	t := &Table{
		dimension: dim,
		words:     make([]string, count),
		wordID:    make(map[string]int32, count),
	}

	vecData := data[headerSize:wordsOff]
	if count > 0 {
		if nativeLittleEndian && uintptr(unsafe.Pointer(&vecData[0]))%4 == 0 {
			t.base = data
			t.data = unsafe.Slice((*float32)(unsafe.Pointer(&vecData[0])), count*dim)
		} else {
			t.data = make([]float32, count*dim)
			for i := range t.data {
				t.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(vecData[i*4:]))
			}
		}
	}

	off := wordsOff
	end := wordsOff + int(hdr.WordBytes)
	for i := 0; i < count; i++ {
		if off+2 > end {
			return nil, fmt.Errorf("embedding: word %d: truncated length", i)
		}
		n := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2
		if off+n > end {
			return nil, fmt.Errorf("embedding: word %d: truncated bytes", i)
		}
		word := string(data[off : off+n])
		off += n
		if _, dup := t.wordID[word]; dup {
			return nil, fmt.Errorf("embedding: duplicate word %q", word)
		}
		t.words[i] = word
		t.wordID[word] = int32(i)
	}
	return t, nil
}

var nativeLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()
