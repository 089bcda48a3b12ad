package embedding

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/headlands-org/go-semantle/vocab"
)

// Format selects the word2vec serialisation.
type Format int

const (
	// FormatText is "count dim" followed by one "word v1 v2 ..." line per
	// entry. A file whose first line already holds a vector (GloVe style)
	// is accepted as well.
	FormatText Format = iota
	// FormatBinary is the original word2vec binary layout: a "count dim"
	// line, then per entry the word, a space and dim little-endian float32.
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "text" or "binary".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "binary", "bin":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("embedding: unknown word2vec format %q", s)
	}
}

// ProgressFunc receives updates during long-running imports. total is zero
// when the input does not announce its size.
type ProgressFunc func(current, total int)

// ImportOptions configures ReadWord2Vec.
type ImportOptions struct {
	Format   Format
	Keep     func(word string) bool
	Progress ProgressFunc
}

// ImportOption is a functional option for ReadWord2Vec.
type ImportOption func(*ImportOptions)

// WithFormat selects the input format (default FormatText).
func WithFormat(f Format) ImportOption {
	return func(o *ImportOptions) { o.Format = f }
}

// WithKeep filters entries; only words for which keep returns true are
// stored. The word passed to keep is already normalized.
func WithKeep(keep func(word string) bool) ImportOption {
	return func(o *ImportOptions) { o.Keep = keep }
}

// WithProgress registers a callback invoked while reading.
func WithProgress(fn ProgressFunc) ImportOption {
	return func(o *ImportOptions) { o.Progress = fn }
}

const progressEvery = 10000

// ReadWord2Vec imports a word2vec file into a Table. Later duplicates of a
// word are ignored.
func ReadWord2Vec(ctx context.Context, r io.Reader, opts ...ImportOption) (*Table, error) {
	var options ImportOptions
	for _, opt := range opts {
		opt(&options)
	}

	br := bufio.NewReaderSize(r, 1<<20)
	imp := &importer{ctx: ctx, options: options}

	var err error
	switch options.Format {
	case FormatText:
		err = imp.readText(br)
	case FormatBinary:
		err = imp.readBinary(br)
	default:
		err = fmt.Errorf("embedding: unsupported format %v", options.Format)
	}
	if err != nil {
		return nil, err
	}
	if imp.builder == nil {
		return nil, errors.New("embedding: no vectors added")
	}
	if options.Progress != nil {
		options.Progress(imp.seen, imp.total)
	}
	return imp.builder.Build(ctx)
}

type importer struct {
	ctx     context.Context
	options ImportOptions
	builder *Builder
	total   int
	seen    int
}

// tick counts one consumed entry, reporting progress and honouring
// cancellation every progressEvery entries.
func (imp *importer) tick() error {
	imp.seen++
	if imp.seen%progressEvery != 0 {
		return nil
	}
	if err := imp.ctx.Err(); err != nil {
		return err
	}
	if imp.options.Progress != nil {
		imp.options.Progress(imp.seen, imp.total)
	}
	return nil
}

func (imp *importer) add(word string, vec []float32) error {
	if imp.builder == nil {
		imp.builder = NewBuilder(WithDimension(len(vec)))
	}
	if imp.builder.Has(word) {
		return nil
	}
	return imp.builder.Add(word, vec)
}

func (imp *importer) keep(word string) (string, bool) {
	word = vocab.Normalize(word)
	if word == "" {
		return "", false
	}
	if imp.options.Keep != nil && !imp.options.Keep(word) {
		return "", false
	}
	return word, true
}

func (imp *importer) readText(br *bufio.Reader) error {
	dim := 0
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("embedding: read line %d: %w", lineNo+1, err)
		}
		lineNo++
		fields := strings.Fields(line)
		if len(fields) > 0 {
			if lineNo == 1 && len(fields) == 2 {
				total, errC := strconv.Atoi(fields[0])
				d, errD := strconv.Atoi(fields[1])
				if errC == nil && errD == nil {
					imp.total, dim = total, d
					fields = nil
				}
			}
			if len(fields) > 0 {
				if dim == 0 {
					dim = len(fields) - 1
				}
				if err := imp.textEntry(fields, dim, lineNo); err != nil {
					return err
				}
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

func (imp *importer) textEntry(fields []string, dim, lineNo int) error {
	if len(fields) != dim+1 {
		return fmt.Errorf("embedding: line %d: got %d values, want %d", lineNo, len(fields)-1, dim)
	}
	if err := imp.tick(); err != nil {
		return err
	}
	word, ok := imp.keep(fields[0])
	if !ok {
		return nil
	}
	vec := make([]float32, dim)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return fmt.Errorf("embedding: line %d: %w", lineNo, err)
		}
		vec[i] = float32(v)
	}
	return imp.add(word, vec)
}

func (imp *importer) readBinary(br *bufio.Reader) error {
	header, err := br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("embedding: read binary header: %w", err)
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return fmt.Errorf("embedding: malformed binary header %q", strings.TrimSpace(header))
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("embedding: binary header count: %w", err)
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil || dim <= 0 {
		return fmt.Errorf("embedding: binary header dimension %q", fields[1])
	}
	imp.total = count

	raw := make([]byte, dim*4)
	for i := 0; i < count; i++ {
		word, err := readBinaryWord(br)
		if err != nil {
			return fmt.Errorf("embedding: entry %d: %w", i, err)
		}
		if _, err := io.ReadFull(br, raw); err != nil {
			return fmt.Errorf("embedding: entry %d vector: %w", i, err)
		}
		if err := imp.tick(); err != nil {
			return err
		}
		kept, ok := imp.keep(word)
		if !ok {
			continue
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[j*4:]))
		}
		if err := imp.add(kept, vec); err != nil {
			return err
		}
	}
	return nil
}

// readBinaryWord reads up to the separating space, skipping the newline some
// writers leave after each vector.
func readBinaryWord(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		c, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if c == ' ' {
			break
		}
		if c == '\n' && sb.Len() == 0 {
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}
