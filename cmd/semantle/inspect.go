package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/internal/kernels"
)

func newInspectCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "inspect [table]",
		Short: "Print a table's header and its first words",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.VectorsPath
			if len(args) == 1 {
				path = args[0]
			}
			return inspect(cmd.OutOrStdout(), path, limit, a.cfg.Mmap)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of words to list")
	return cmd
}

func inspect(w io.Writer, path string, limit int, mmap bool) error {
	hdr, err := embedding.ReadHeader(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Table: %s\n", path)
	fmt.Fprintf(w, "Version: %d\n", hdr.Version)
	fmt.Fprintf(w, "Dimension: %d\n", hdr.Dimension)
	fmt.Fprintf(w, "Words: %d\n\n", hdr.Count)

	t, err := embedding.Open(path, embedding.WithMmap(mmap))
	if err != nil {
		return err
	}
	defer t.Close()

	fmt.Fprintln(w, "=== Words ===")
	for i := 0; i < t.Count(); i++ {
		if i >= limit {
			fmt.Fprintf(w, "... and %d more words\n", t.Count()-limit)
			break
		}
		word := t.Word(i)
		vec, _ := t.Vector(word)
		fmt.Fprintf(w, "%-30s  norm=%.4f  head=%v\n", word, kernels.L2Norm(vec), head(vec, 4))
	}
	return nil
}

func head(v []float32, n int) []float32 {
	if len(v) < n {
		return v
	}
	return v[:n]
}
