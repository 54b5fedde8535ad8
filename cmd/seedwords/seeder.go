package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/phrazzld/crocodile-words/internal/generation"
	"github.com/schollz/progressbar/v3"
)

// wordWriter persists generated words for a theme.
type wordWriter interface {
	AddWords(ctx context.Context, theme string, words []string) (int, error)
}

type seeder struct {
	backend  generation.Backend
	store    wordWriter
	count    int
	logger   *slog.Logger
	progress io.Writer
}

type seedResult struct {
	Generated int
	Inserted  int
	Failed    []string
}

// seed generates count words per theme and stores them. A failing theme is logged
// and recorded; the remaining themes are still processed.
func (s *seeder) seed(ctx context.Context, themes []string) seedResult {
	bar := progressbar.NewOptions(len(themes),
		progressbar.OptionSetDescription("Seeding themes..."),
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer func() { _ = bar.Finish() }()

	var res seedResult
	for _, theme := range themes {
		if ctx.Err() != nil {
			res.Failed = append(res.Failed, theme)
			continue
		}

		bar.Describe("Seeding " + theme)
		words, err := s.backend.GenerateWords(ctx, theme, s.count)
		if err != nil {
			s.logger.Error("word generation failed", "theme", theme, "error", err)
			res.Failed = append(res.Failed, theme)
			_ = bar.Add(1)
			continue
		}
		res.Generated += len(words)

		inserted, err := s.store.AddWords(ctx, theme, words)
		if err != nil {
			s.logger.Error("storing words failed", "theme", theme, "error", err)
			res.Failed = append(res.Failed, theme)
			_ = bar.Add(1)
			continue
		}
		res.Inserted += inserted

		s.logger.Debug("theme seeded", "theme", theme, "generated", len(words), "inserted", inserted)
		_ = bar.Add(1)
	}
	return res
}
