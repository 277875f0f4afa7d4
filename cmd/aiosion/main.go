// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/aiosion"
	"github.com/poiesic/aiosion/config"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/nlp"
	"github.com/poiesic/aiosion/server"
	"github.com/urfave/cli/v2"
)

// newService is replaced in tests to avoid real provider clients.
var newService = func(ctx context.Context, cfg *config.Config) (*aiosion.Service, error) {
	return aiosion.NewService(ctx, cfg)
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:   "aiosion",
		Usage:  "Text generation and NLP analysis from the command line",
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				Value:   "config/config.yml",
				EnvVars: []string{"AIOSION_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); defaults to log.level from the config",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Generate a response to a prompt",
				ArgsUsage: "<text>",
				Action:    generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "model",
						Usage: "Provider to use: openai, anthropic, google, huggingface (default: as per config)",
					},
				},
			},
			{
				Name:      "tokenize",
				Usage:     "Split text into tokens",
				ArgsUsage: "<text>",
				Action:    tokenizeCommand,
			},
			{
				Name:      "pos",
				Usage:     "Tag each token with its part of speech",
				ArgsUsage: "<text>",
				Action:    posCommand,
			},
			{
				Name:      "ner",
				Usage:     "List named entities",
				ArgsUsage: "<text>",
				Action:    nerCommand,
			},
			{
				Name:      "sentiment",
				Usage:     "Score polarity and subjectivity",
				ArgsUsage: "<text>",
				Action:    sentimentCommand,
			},
			{
				Name:      "summarize",
				Usage:     "Extract the leading sentences of a text",
				ArgsUsage: "<text>",
				Action:    summarizeCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "ratio",
						Usage: "Share of sentences to keep",
						Value: nlp.DefaultSummaryRatio,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (default: server.addr from the config)",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "Show recent generation requests from the journal",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of entries to show",
						Value: server.DefaultHistoryLimit,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	if !c.IsSet("log-level") {
		return nil
	}
	return configureLogger(c.String("log-level"))
}

func configureLogger(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if !c.IsSet("log-level") {
		if err := configureLogger(cfg.Log.Level); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// withService loads the configuration, builds the service and runs fn.
func withService(c *cli.Context, fn func(ctx context.Context, svc *aiosion.Service) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return runService(c, cfg, fn)
}

func runService(c *cli.Context, cfg *config.Config, fn func(ctx context.Context, svc *aiosion.Service) error) error {
	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, err := newService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer svc.Close()

	return fn(ctx, svc)
}

func textArg(c *cli.Context) (string, error) {
	switch c.NArg() {
	case 0:
		return "", errors.New("text argument is required")
	case 1:
		return c.Args().First(), nil
	default:
		return "", fmt.Errorf("expected one text argument, got %d; quote the text", c.NArg())
	}
}

// printResult writes label and value, or the keyed JSON object with --json.
func printResult(c *cli.Context, label, key string, value any) error {
	w := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(w)
		return enc.Encode(map[string]any{key: value})
	}
	if s, ok := value.(string); ok {
		_, err := fmt.Fprintf(w, "%s: %s\n", label, s)
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", label, data)
	return err
}

func generateCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	// An explicitly empty --model is rejected, not treated as the primary.
	explicit := c.IsSet("model")
	model := c.String("model")
	if explicit {
		if _, err := core.ParseProviderName(model); err != nil {
			return err
		}
	}
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		var (
			response string
			err      error
		)
		if explicit {
			response, err = svc.Generator().Generate(ctx, text, model)
		} else {
			response, err = svc.Generator().GeneratePrimary(ctx, text)
		}
		if err != nil {
			return err
		}
		return printResult(c, "Generated response", "response", response)
	})
}

func tokenizeCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		return printResult(c, "Tokens", "tokens", svc.Analyzer().Tokenize(ctx, text))
	})
}

func posCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		return printResult(c, "Part-of-speech tags", "tags", svc.Analyzer().POSTag(ctx, text))
	})
}

func nerCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		return printResult(c, "Named entities", "entities", svc.Analyzer().NamedEntities(ctx, text))
	})
}

func sentimentCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		return printResult(c, "Sentiment analysis", "sentiment", svc.Analyzer().SentimentAnalysis(ctx, text))
	})
}

func summarizeCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	ratio := c.Float64("ratio")
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		return printResult(c, "Summary", "summary", svc.Analyzer().Summarize(ctx, text, ratio))
	})
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	return runService(c, cfg, func(ctx context.Context, svc *aiosion.Service) error {
		srv, err := svc.NewServer()
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	})
}

func historyCommand(c *cli.Context) error {
	limit := c.Int("limit")
	if limit < 1 {
		return fmt.Errorf("limit must be greater than 0")
	}
	return withService(c, func(ctx context.Context, svc *aiosion.Service) error {
		journal := svc.Journal()
		if journal == nil {
			return errors.New("journal is not configured: set journal.path")
		}
		records, err := journal.GetRecentGenerationRecords(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}
		if c.Bool("json") {
			return json.NewEncoder(c.App.Writer).Encode(map[string]any{"records": records})
		}
		for _, rec := range records {
			provider := rec.Provider
			if rec.Degraded {
				provider = "(degraded)"
			}
			fmt.Fprintf(c.App.Writer, "%d\t%s\t%s\t%q\n",
				rec.Id, rec.CreatedAt.Local().Format(time.DateTime), provider, rec.Prompt)
		}
		return nil
	})
}
