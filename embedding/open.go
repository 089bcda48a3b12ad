package embedding

import (
	"fmt"
	"os"

	mmapgo "github.com/edsrzf/mmap-go"
	"golang.org/x/exp/mmap"
)

// OpenOptions configures how a table file is loaded.
type OpenOptions struct {
	// Mmap serves vectors straight from a read-only memory mapping instead
	// of copying the file into the heap. Start-up is near instant and pages
	// are shared between processes, at the cost of page faults on the first
	// pass over the vectors.
	Mmap bool
}

// OpenOption is a functional option for Open.
type OpenOption func(*OpenOptions)

// WithMmap selects the zero-copy memory-mapped loader.
func WithMmap(enabled bool) OpenOption {
	return func(o *OpenOptions) {
		o.Mmap = enabled
	}
}

// Open loads a table file written by Table.WriteTo.
func Open(path string, opts ...OpenOption) (*Table, error) {
	var options OpenOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.Mmap {
		return openMapped(path)
	}
	return openRAM(path)
}

// openRAM reads the whole file through a transient mapping and decodes it
// from a heap copy.
func openRAM(path string) (*Table, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: mmap file: %w", err)
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("embedding: read mmap: %w", err)
	}
	return decodeTable(data)
}

type mappedFile struct {
	file *os.File
	m    mmapgo.MMap
}

func (mf *mappedFile) Close() error {
	var err error
	if mf.m != nil {
		err = mf.m.Unmap()
		mf.m = nil
	}
	if mf.file != nil {
		if e := mf.file.Close(); e != nil && err == nil {
			err = e
		}
		mf.file = nil
	}
	return err
}

// openMapped keeps the file mapped for the table's lifetime.
func openMapped(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: open file: %w", err)
	}
	m, err := mmapgo.Map(file, mmapgo.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("embedding: mmap file: %w", err)
	}
	mf := &mappedFile{file: file, m: m}

	t, err := decodeTable(m)
	if err != nil {
		mf.Close()
		return nil, err
	}
	t.src = mf
	return t, nil
}

// ReadHeader reads only the header of a table file.
func ReadHeader(path string) (Header, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("embedding: mmap file: %w", err)
	}
	defer r.Close()

	if r.Len() < headerSize {
		return Header{}, fmt.Errorf("embedding: file too small for header")
	}
	buf := make([]byte, headerSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return Header{}, fmt.Errorf("embedding: read header: %w", err)
	}
	hdr, err := readHeader(buf)
	if err != nil {
		return Header{}, err
	}
	return Header{Version: hdr.Version, Dimension: int(hdr.Dimension), Count: int(hdr.Count)}, nil
}
