package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/palettelab/color-agent/internal/models"
	"github.com/palettelab/color-agent/internal/parser"
	"github.com/palettelab/color-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	input := flag.String("input", "", "Input file with free-form color text ('-' for stdin)")
	output := flag.String("output", "", "Output file for JSON results (default stdout)")
	dryRun := flag.Bool("dry-run", false, "Parse input and print the queries without resolving")

	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	raw := readInput(*input)

	queries := parser.Parse(string(raw))
	if len(queries) == 0 {
		log.Fatal().Msg("input contains no color queries")
	}
	log.Info().Int("queries", len(queries)).Msg("Input parsed")

	if *dryRun {
		writeJSON(*output, queries)
		return
	}

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	results := deps.Resolver.ResolveMany(ctx, queries)

	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}

	writeJSON(*output, models.BatchResponse{Results: results})

	log.Info().
		Int("resolved", len(results)-failed).
		Int("failed", failed).
		Dur("duration", time.Since(startTime)).
		Msg("Batch complete")
}

func readInput(path string) []byte {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
		return data
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read input file")
	}
	return data
}

func writeJSON(path string, v any) {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to create output file")
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("Failed to write results")
	}
}
