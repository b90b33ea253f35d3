// Command rscode prints the Reed-Solomon codeword of a polynomial given
// either by its coefficients or by its values at anchor points, and can
// commit to the codeword and spot-check it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nulltea/fingerprint/core"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the flags below")
	modulus := flag.Uint64("p", 11, "Prime modulus")
	message := flag.String("message", "", "Comma separated coefficients, lowest degree first")
	anchors := flag.String("anchors", "", "Comma separated anchor points")
	values := flag.String("values", "", "Comma separated values at the anchor points")
	workers := flag.Int("workers", 1, "Goroutines used to fill a codeword (0 = NumCPU)")
	queries := flag.Int("queries", 0, "Spot checks run against the committed codeword (0 disables the commitment)")
	seed := flag.Uint64("seed", 0, "Seed for a random message when none is given")
	k := flag.Int("k", 3, "Length of the random message")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	cfg := Config{
		Modulus:   *modulus,
		Workers:   *workers,
		Queries:   *queries,
		Seed:      *seed,
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	}

	var err error
	if cfg.Message, err = parseUints(*message); err != nil {
		fatal("invalid -message", err)
	}
	if cfg.Anchors, err = parseUints(*anchors); err != nil {
		fatal("invalid -anchors", err)
	}
	if cfg.Values, err = parseUints(*values); err != nil {
		fatal("invalid -values", err)
	}

	if *configPath != "" {
		if cfg, err = loadConfig(*configPath, cfg); err != nil {
			fatal("invalid config", err)
		}
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	field, err := core.NewPrimeField(cfg.Modulus)
	if err != nil {
		fatal("invalid modulus", err)
	}

	if cfg.Message == nil && cfg.Values == nil {
		cfg.Message = core.RandomMessage(*k, field, cfg.Seed)
		logger.Info("generated random message", "k", *k, "seed", cfg.Seed)
	}

	if err := run(cfg, field, logger); err != nil {
		fatal("run failed", err)
	}
}

func run(cfg Config, field *core.PrimeField, logger *slog.Logger) error {
	root := core.StartSpan("rscode", nil)
	code := core.NewCode(field, core.WithWorkers(cfg.Workers))

	var byCoefficients, byInterpolation []uint64
	var interpolated *core.LagrangePoly

	if cfg.Message != nil {
		span := core.StartSpan("encode coefficients", root)
		byCoefficients = code.EncodeCoefficients(cfg.Message)
		span.End()
		fmt.Printf("coefficients %v -> %s\n", cfg.Message, formatCodeword(byCoefficients))
	}

	if cfg.Values != nil {
		anchors := cfg.Anchors
		if anchors == nil {
			anchors = make([]uint64, len(cfg.Values))
			for i := range anchors {
				anchors[i] = uint64(i)
			}
		}

		poly, err := core.NewLagrangePoly(field, cfg.Values, anchors)
		if err != nil {
			return err
		}
		interpolated = poly

		span := core.StartSpan("encode interpolation", root)
		byInterpolation = code.EncodeLagrange(poly)
		span.End()
		fmt.Printf("values %v at %v -> %s\n", cfg.Values, anchors, formatCodeword(byInterpolation))
	}

	if byCoefficients != nil && byInterpolation != nil {
		logger.Info("representations compared", "equal", slices.Equal(byCoefficients, byInterpolation))
	}

	if cfg.Queries > 0 {
		codeword := byCoefficients
		eval := func(x uint64) uint64 { return core.Fingerprint(cfg.Message, field, x) }
		if codeword == nil {
			codeword = byInterpolation
			eval = interpolated.Evaluate
		}
		if err := spotCheck(codeword, cfg.Queries, eval, logger); err != nil {
			return err
		}
	}

	took := root.End()
	logger.Info("done",
		"length", humanize.Comma(int64(code.Length())),
		"size", humanize.Bytes(uint64(code.Length()*core.SymbolBytes)),
		"took", took.String(),
	)
	return nil
}

func spotCheck(codeword []uint64, queries int, eval func(uint64) uint64, logger *slog.Logger) error {
	commitment, err := core.Commit(codeword)
	if err != nil {
		return err
	}

	openings, err := commitment.Open(core.NewTranscript("rscode"), queries)
	if err != nil {
		return err
	}

	pathBytes := 0
	for _, o := range openings {
		pathBytes += len(o.Path) * 32
	}

	if err := core.VerifyOpenings(commitment.Root(), len(codeword), openings, core.NewTranscript("rscode"), queries, eval); err != nil {
		return err
	}

	logger.Info("spot check passed",
		"root", fmt.Sprintf("%x", commitment.Root()),
		"queries", queries,
		"proof_size", humanize.Bytes(uint64(pathBytes+len(openings)*core.SymbolBytes)),
	)
	return nil
}

func formatCodeword(codeword []uint64) string {
	const maxShown = 32
	parts := make([]string, 0, min(len(codeword), maxShown))
	for i, s := range codeword {
		if i == maxShown {
			break
		}
		parts = append(parts, fmt.Sprint(s))
	}
	out := "[" + strings.Join(parts, ",")
	if len(codeword) > maxShown {
		out += fmt.Sprintf(",... (%s more)", humanize.Comma(int64(len(codeword)-maxShown)))
	}
	return out + "]"
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
