package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	semantle "github.com/headlands-org/go-semantle"
	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/solver"
)

func newSolveCmd(a *app) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Interactively narrow the candidates one reported guess at a time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Loading datasets...")
			start := time.Now()
			s, err := semantle.Open(a.cfg.VectorsPath, a.cfg.WordsPath,
				semantle.WithMmap(a.cfg.Mmap),
				semantle.WithWorkers(a.cfg.Workers),
				semantle.WithVerbose(a.cfg.LogLevel == "debug"),
				semantle.WithLogOutput(cmd.ErrOrStderr()),
			)
			if err != nil {
				return err
			}
			defer s.Close()
			a.logger.Info("loaded %d words from %s in %v", s.Vocabulary().Len(), a.cfg.WordsPath, time.Since(start))
			fmt.Fprintln(cmd.OutOrStdout(), "Datasets loaded.")
			fmt.Fprintln(cmd.OutOrStdout())

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			sess := &session{
				in:         bufio.NewReader(cmd.InOrStdin()),
				out:        cmd.OutOrStdout(),
				solver:     s,
				sampleSize: a.cfg.SampleSize,
				rng:        rand.New(rand.NewSource(seed)),
			}
			return sess.loop()
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the sample words shown after each guess (0 = time based)")
	return cmd
}

// session is the interactive front end around a Solver.
type session struct {
	in         *bufio.Reader
	out        io.Writer
	solver     *semantle.Solver
	sampleSize int
	rng        *rand.Rand
}

// loop plays runs until the player declines another one or input ends.
func (s *session) loop() error {
	for {
		if err := s.play(s.solver.NewRun()); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line, err := s.prompt("Would you like to do another run? [y/N] ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			return nil
		}
	}
}

func (s *session) play(run *semantle.Run) error {
	fmt.Fprintln(s.out, "Enter guesses as '<guess>, <similarity>'")
	fmt.Fprintf(s.out, "There are %d possible words remaining.\n", run.Len())
	fmt.Fprintln(s.out)

	for run.State() == solver.Active {
		g, err := s.readGuess()
		if err != nil {
			return err
		}
		if _, err := run.Apply(g); err != nil {
			if errors.Is(err, embedding.ErrWordNotFound) {
				fmt.Fprintf(s.out, "'%s' has no embedding; try another guess.\n\n", g.Word)
				continue
			}
			return err
		}
		s.report(run)
	}
	return nil
}

func (s *session) readGuess() (solver.Guess, error) {
	for {
		line, err := s.prompt("Guess: ")
		if err != nil {
			return solver.Guess{}, err
		}
		g, ok, err := parseGuess(line)
		if !ok {
			continue
		}
		if err != nil {
			fmt.Fprintln(s.out, "Reported similarity was not a float.")
			fmt.Fprintln(s.out)
			continue
		}
		return g, nil
	}
}

func (s *session) report(run *semantle.Run) {
	sample := run.Sample(s.sampleSize, s.rng)
	switch n := run.Len(); {
	case n > 3:
		fmt.Fprintf(s.out, "There are %d possible words remaining (such as %s).\n", n, makeList(sample))
	case n > 1:
		fmt.Fprintf(s.out, "There are %d possible words remaining: %s.\n", n, makeList(sample))
	case n == 1:
		answer, _ := run.Answer()
		fmt.Fprintf(s.out, "The answer is '%s'!\n", answer)
	default:
		fmt.Fprintln(s.out, "There are no possible words remaining--something went wrong.")
	}
	fmt.Fprintln(s.out)
}

// prompt writes p and reads one line. A final line without a newline is
// returned before io.EOF is reported.
func (s *session) prompt(p string) (string, error) {
	fmt.Fprint(s.out, p)
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return line, nil
}
