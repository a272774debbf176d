// Command blockfall-sim plays batches of bot games without a window and
// reports score statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/config"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type flags struct {
	config    string
	weights   string
	games     int
	seed      uint64
	maxPieces int
	workers   int
	out       string
	in        string
	quiet     bool
	lang      string
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "blockfall.yaml", "path to the YAML config file")
	flag.StringVar(&f.weights, "weights", "", "YAML file overriding the bot's feature weights")
	flag.IntVar(&f.games, "games", 100, "number of games to play")
	flag.Uint64Var(&f.seed, "seed", 1, "seed of the first game; game i uses seed+i")
	flag.IntVar(&f.maxPieces, "max-pieces", 500, "end a game after this many pieces")
	flag.IntVar(&f.workers, "workers", runtime.NumCPU(), "games played in parallel")
	flag.StringVar(&f.out, "out", "", "write per-game JSON lines here (.zst compresses)")
	flag.StringVar(&f.in, "in", "", "report on a previous -out file instead of playing")
	flag.BoolVar(&f.quiet, "quiet", false, "hide the progress bar")
	flag.StringVar(&f.lang, "lang", "en", "number formatting language")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, f, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "blockfall-sim:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags, stdout io.Writer) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	lang, err := language.Parse(f.lang)
	if err != nil {
		return fmt.Errorf("lang %q: %w", f.lang, err)
	}

	report := &Report{Games: f.games, Workers: f.workers, MaxPieces: f.maxPieces, Seed: f.seed}

	if f.in != "" {
		start := time.Now()
		results, err := readRecords(f.in)
		if err != nil {
			return err
		}
		report.Games = len(results)
		report.Summarize(results)
		report.TotalTime = time.Since(start)
		return report.Generate(stdout, lang)
	}

	if f.games <= 0 {
		return errors.New("games must be positive")
	}
	if f.maxPieces <= 0 {
		return errors.New("max-pieces must be positive")
	}

	weights, err := loadWeights(f.weights)
	if err != nil {
		return err
	}

	opts := Options{Config: cfg, Weights: weights, MaxPieces: f.maxPieces}

	bar := pb.New(f.games)
	if f.quiet {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	log.Info("simulating", "games", f.games, "workers", f.workers, "seed", f.seed, "max_pieces", f.maxPieces)
	results := Run(ctx, f.games, f.workers, f.seed, opts, bar)
	bar.Finish()
	report.TotalTime = time.Since(bar.StartTime())
	report.Summarize(results)

	if len(results) < f.games {
		log.Warn("interrupted", "played", len(results), "games", f.games)
	}

	if f.out != "" {
		if err := writeRecords(f.out, results); err != nil {
			return err
		}
		log.Info("records written", "path", f.out, "games", len(results))
	}
	return report.Generate(stdout, lang)
}

// loadWeights reads bot weights from path, starting from the defaults. An
// empty path returns the defaults.
func loadWeights(path string) (bot.Weights, error) {
	w := bot.DefaultWeights
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse weights %s: %w", path, err)
	}
	return w, nil
}
