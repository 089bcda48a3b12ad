package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/schollz/progressbar/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"

	semantle "github.com/headlands-org/go-semantle"
	"github.com/headlands-org/go-semantle/solver"
	"github.com/headlands-org/go-semantle/vocab"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		guess    string
		reported float64
		noBar    bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare one-pair-at-a-time filtering against the batched engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			start := time.Now()
			s, err := semantle.Open(a.cfg.VectorsPath, a.cfg.WordsPath,
				semantle.WithMmap(a.cfg.Mmap),
				semantle.WithWorkers(a.cfg.Workers),
				semantle.WithLogOutput(cmd.ErrOrStderr()),
			)
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintf(out, "Loaded %d words (mmap=%v, workers=%d) in %v\n",
				s.Vocabulary().Len(), a.cfg.Mmap, a.cfg.Workers, time.Since(start))
			printHost(out, a)

			var bar io.Writer
			if !noBar {
				bar = cmd.ErrOrStderr()
			}
			res, err := runBench(s, solver.Guess{Word: guess, Reported: reported}, bar)
			if err != nil {
				return err
			}
			res.print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&guess, "guess", "house", "Guess word to score against every candidate")
	cmd.Flags().Float64Var(&reported, "sim", 8.43, "Reported similarity for the guess")
	cmd.Flags().BoolVar(&noBar, "no-progress", false, "Hide the progress bar for the one-at-a-time pass")
	return cmd
}

type benchResult struct {
	pairs      int
	matches    int
	vanilla    time.Duration
	vectorized time.Duration
}

// runBench filters the full vocabulary twice, once pair by pair through the
// reference scorer and once through the batched engine, and fails unless
// both agree. A nil bar disables the progress display.
func runBench(s *semantle.Solver, g solver.Guess, bar io.Writer) (benchResult, error) {
	v := s.Vocabulary()
	ref := s.Reference()
	all := v.All()

	var pb *progressbar.ProgressBar
	if bar != nil {
		pb = progressbar.NewOptions(v.Len(),
			progressbar.OptionSetWriter(bar),
			progressbar.OptionSetDescription("vanilla"),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	start := time.Now()
	vanilla := vocab.NewSet()
	for _, id := range all.IDs() {
		sim, err := ref.Similarity(g.Word, v.Word(id))
		if err != nil {
			return benchResult{}, err
		}
		if math.Abs(sim-g.Reported) <= solver.Tolerance {
			vanilla[id] = struct{}{}
		}
		if pb != nil {
			_ = pb.Add(1)
		}
	}
	vanillaTime := time.Since(start)
	if pb != nil {
		_ = pb.Finish()
		fmt.Fprintln(bar)
	}

	start = time.Now()
	vectorized, err := solver.Filter(s.Engine(), g, all)
	if err != nil {
		return benchResult{}, err
	}
	vectorizedTime := time.Since(start)

	if !vanilla.Equal(vectorized) {
		return benchResult{}, fmt.Errorf("bench: vanilla kept %d words, vectorized kept %d", vanilla.Len(), vectorized.Len())
	}
	return benchResult{
		pairs:      v.Len(),
		matches:    vanilla.Len(),
		vanilla:    vanillaTime,
		vectorized: vectorizedTime,
	}, nil
}

func (r benchResult) print(w io.Writer) {
	fmt.Fprintf(w, "Both methods kept %d of %d words.\n\n", r.matches, r.pairs)
	fmt.Fprintf(w, "%-25s%-25s%-25s\n", "Method", "Elapsed time", "Time per cosine")
	fmt.Fprintf(w, "%-25s%-25s%-25s\n", "Vanilla", r.vanilla, perPair(r.vanilla, r.pairs))
	fmt.Fprintf(w, "%-25s%-25s%-25s\n", "Vectorized", r.vectorized, perPair(r.vectorized, r.pairs))
	if r.vectorized > 0 {
		fmt.Fprintf(w, "\nVectorized is %.1fx faster.\n", float64(r.vanilla)/float64(r.vectorized))
	}
}

func perPair(d time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return d / time.Duration(n)
}

// printHost reports the CPU model and resident memory so runs from different
// machines and storage modes can be compared.
func printHost(w io.Writer, a *app) {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		fmt.Fprintf(w, "CPU: %s\n", infos[0].ModelName)
	} else if err != nil {
		a.logger.Debug("cpu info: %v", err)
	}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		a.logger.Debug("process handle: %v", err)
		return
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		a.logger.Debug("memory info: %v", err)
		return
	}
	fmt.Fprintf(w, "RSS: %.1f MiB\n", float64(mem.RSS)/(1<<20))
}
