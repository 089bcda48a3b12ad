package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/vocab"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		input    string
		format   string
		list     string
		output   string
		wordsOut string
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Import word2vec vectors into a table restricted to a word list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			if output == "" {
				output = a.cfg.VectorsPath
			}
			f, err := resolveFormat(format, input)
			if err != nil {
				return err
			}

			var words []string
			if list != "" {
				if words, err = readWordList(list); err != nil {
					return err
				}
				a.logger.Info("filtering %s to %d listed words", input, len(words))
			}

			res, err := convert(cmd.Context(), convertParams{
				input:    input,
				format:   f,
				words:    words,
				output:   output,
				wordsOut: wordsOut,
				progress: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d vectors of dimension %d to %s\n", res.count, res.dimension, output)
			if wordsOut != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d words to %s (%d listed words had no vector)\n", res.listed, wordsOut, res.missing)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "word2vec vectors (text, GloVe text or binary)")
	cmd.Flags().StringVar(&format, "format", "auto", "text|binary|auto (auto treats .bin as binary)")
	cmd.Flags().StringVar(&list, "list", "", "Keep only words from this list")
	cmd.Flags().StringVar(&output, "output", "", "Table to write (default $SEMANTLE_VECTORS)")
	cmd.Flags().StringVar(&wordsOut, "words-out", "", "Write the listed words that have vectors, in list order")
	return cmd
}

func resolveFormat(name, input string) (embedding.Format, error) {
	if name == "" || name == "auto" {
		if strings.EqualFold(filepath.Ext(input), ".bin") {
			return embedding.FormatBinary, nil
		}
		return embedding.FormatText, nil
	}
	return embedding.ParseFormat(name)
}

// readWordList reads a newline-separated list, normalizing words and
// dropping blanks and repeats.
func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := vocab.Normalize(sc.Text())
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return words, nil
}

type convertParams struct {
	input    string
	format   embedding.Format
	words    []string // nil keeps every vector
	output   string
	wordsOut string
	progress io.Writer // nil disables the progress bar
}

type convertResult struct {
	count     int
	dimension int
	listed    int
	missing   int
}

func convert(ctx context.Context, p convertParams) (convertResult, error) {
	in, err := os.Open(p.input)
	if err != nil {
		return convertResult{}, err
	}
	defer in.Close()

	opts := []embedding.ImportOption{embedding.WithFormat(p.format)}
	if p.words != nil {
		keep := make(map[string]struct{}, len(p.words))
		for _, w := range p.words {
			keep[w] = struct{}{}
		}
		opts = append(opts, embedding.WithKeep(func(w string) bool {
			_, ok := keep[w]
			return ok
		}))
	}
	var bar *progressbar.ProgressBar
	if p.progress != nil {
		opts = append(opts, embedding.WithProgress(func(current, total int) {
			if total <= 0 {
				return
			}
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(p.progress),
					progressbar.OptionSetDescription("importing"),
				)
			}
			_ = bar.Set(current)
		}))
	}

	table, err := embedding.ReadWord2Vec(ctx, in, opts...)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(p.progress)
	}
	if err != nil {
		return convertResult{}, err
	}
	defer table.Close()

	if err := writeFile(p.output, func(w io.Writer) error {
		_, err := table.WriteTo(w)
		return err
	}); err != nil {
		return convertResult{}, err
	}

	res := convertResult{count: table.Count(), dimension: table.Dimension()}
	if p.wordsOut == "" {
		return res, nil
	}
	var kept []string
	for _, w := range p.words {
		if _, ok := table.Vector(w); ok {
			kept = append(kept, w)
		}
	}
	if p.words == nil {
		kept = table.Words()
	}
	res.listed = len(kept)
	if p.words != nil {
		res.missing = len(p.words) - len(kept)
	}
	err = writeFile(p.wordsOut, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, word := range kept {
			if _, err := bw.WriteString(word + "\n"); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
	return res, err
}

// writeFile writes through a temporary file in the target directory and
// renames it into place.
func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
