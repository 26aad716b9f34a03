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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "taxonomist",
		Usage: "Build and search a taxonomy of database tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: ./taxonomist.yaml if present)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build taxonomy.json and taxonomy.md from a metadata snapshot",
				Action: buildCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:  "output-json",
						Usage: "Path of the JSON taxonomy (empty to skip)",
					},
					&cli.StringFlag{
						Name:  "output-markdown",
						Usage: "Path of the Markdown summary (empty to skip)",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Rank tables against a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(sourceFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of tables to return",
					},
					&cli.StringFlag{
						Name:  "queries",
						Usage: "File with one query per line, searched concurrently",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for --queries",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				),
			},
			{
				Name:      "show",
				Usage:     "Show one table, or list tables matching --filter",
				ArgsUsage: "[table]",
				Action:    showCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Substring to match against table names and descriptions",
					},
				),
			},
			{
				Name:   "suggest",
				Usage:  "Suggest starter descriptions for undocumented columns",
				Action: suggestCommand,
				Flags: []cli.Flag{
					inputFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print suggestions as JSON",
					},
				},
			},
			{
				Name:   "snapshots",
				Usage:  "List snapshots stored in the catalog",
				Action: snapshotsCommand,
				Flags: []cli.Flag{
					dbFlag(true),
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the taxonomy over HTTP",
				Action: serveCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Rebuild when the input file changes",
					},
					&cli.IntFlag{
						Name:  "cache-size",
						Usage: "Number of cached search results",
					},
					&cli.DurationFlag{
						Name:  "cache-ttl",
						Usage: "Lifetime of cached search results",
					},
				),
			},
		},
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path to the metadata snapshot JSON",
	}
}

func dbFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the snapshot catalog directory",
		Required: required,
	}
}

// sourceFlags select where a taxonomy comes from: built from --input, or the
// latest snapshot in --db.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		inputFlag(),
		dbFlag(false),
		&cli.StringFlag{
			Name:    "rules",
			Aliases: []string{"r"},
			Usage:   "Path to a YAML rules file layered over the defaults",
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
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
