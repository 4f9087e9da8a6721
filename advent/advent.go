package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// A solution reads the puzzle input at path and returns both answers.
type solution func(path string, logger *zap.Logger) (answers, error)

type answers struct {
	part1 uint64
	part2 uint64
}

var solutions = make(map[int]solution)

func register(day int, fn solution) {
	if _, ok := solutions[day]; ok {
		panic(fmt.Sprintf("duplicate solutions registered for day %d", day))
	}
	solutions[day] = fn
}

func registeredDays() []int {
	var days []int
	for day := range solutions {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		day     int
		path    string
		verbose int
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:          "advent",
		Short:        "Run an Advent of Code solution",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if day < 1 || day > 25 {
				return fmt.Errorf("day must be between 1 and 25; got %d", day)
			}
			fn, ok := solutions[day]
			if !ok {
				return fmt.Errorf("no solution for day %d (have %v)", day, registeredDays())
			}
			logger, err := newLogger(verbose, quiet)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			logger = logger.Named(fmt.Sprintf("day%d", day))
			logger.Info("starting", zap.String("path", path))
			resolved := resolvePath(day, path)
			logger.Info("resolved input path", zap.String("path", resolved))

			start := time.Now()
			ans, err := fn(resolved, logger)
			if err != nil {
				return fmt.Errorf("day %d: %w", day, err)
			}
			logger.Info("solved", zap.Duration("elapsed", time.Since(start)))
			fmt.Fprintf(cmd.OutOrStdout(), "Part 1: %d\n", ans.part1)
			fmt.Fprintf(cmd.OutOrStdout(), "Part 2: %d\n", ans.part2)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.Flags().IntVarP(&day, "day", "d", 0, "Advent day (1-25)")
	cmd.Flags().StringVarP(&path, "path", "p", ".", "Puzzle input file (. means inputs/dayN.txt)")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "Increase logging verbosity (repeatable)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable logging")
	cmd.MarkFlagRequired("day")
	return cmd
}

// newLogger maps the -v count onto a level: none logs errors only, then
// warn, info, and debug.
func newLogger(verbose int, quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	level := zapcore.ErrorLevel
	switch {
	case verbose >= 3:
		level = zapcore.DebugLevel
	case verbose == 2:
		level = zapcore.InfoLevel
	case verbose == 1:
		level = zapcore.WarnLevel
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	config.DisableStacktrace = true
	config.Sampling = nil
	return config.Build()
}
