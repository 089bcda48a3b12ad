// Command semantle solves the word-similarity guessing game and ships the
// tooling around it: table conversion, inspection and benchmarking.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/headlands-org/go-semantle/internal/config"
	"github.com/headlands-org/go-semantle/internal/logging"
)

type app struct {
	cfg    *config.Config
	logger *logging.Logger

	envFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	flagCfg := &config.Config{}

	root := &cobra.Command{
		Use:           "semantle",
		Short:         "Narrow a vocabulary down to the hidden word from similarity reports",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if a.envFile != "" {
				files = append(files, a.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewWithWriters(cfg.LogLevel, cmd.ErrOrStderr(), cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env", "", "Path to an env file (default .env if present)")
	pf.StringVar(&flagCfg.VectorsPath, "vectors", "", "Embedding table written by `semantle convert`")
	pf.StringVar(&flagCfg.WordsPath, "words", "", "Hidden-word list, one word per line")
	pf.BoolVar(&flagCfg.Mmap, "mmap", false, "Serve the embedding table from a memory mapping")
	pf.IntVar(&flagCfg.Workers, "workers", 0, "Goroutines per similarity batch")
	pf.StringVar(&flagCfg.LogLevel, "log-level", "", "debug|info|error")

	root.AddCommand(
		newSolveCmd(a),
		newBenchCmd(a),
		newConvertCmd(a),
		newInspectCmd(a),
	)
	return root
}

// applyFlagOverrides copies explicitly set persistent flags over cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg, flags *config.Config) {
	changed := cmd.Flags().Changed
	if changed("vectors") {
		cfg.VectorsPath = flags.VectorsPath
	}
	if changed("words") {
		cfg.WordsPath = flags.WordsPath
	}
	if changed("mmap") {
		cfg.Mmap = flags.Mmap
	}
	if changed("workers") {
		cfg.Workers = flags.Workers
	}
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
}
