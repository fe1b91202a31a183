package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/maxepunk/ALN-Ecosystem/internal/config"
	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
	"github.com/maxepunk/ALN-Ecosystem/internal/ops"
)

// buildDeps wires the shared operation dependencies, including the
// authenticated document-database client.
func buildDeps(root string, cfg *config.Config) (ops.Deps, error) {
	token, err := config.LoadToken(root)
	if err != nil {
		return ops.Deps{}, err
	}
	return ops.Deps{
		Client:  notion.NewClient(token),
		Config:  cfg,
		Logger:  newLogger(),
		BaseDir: root,
	}, nil
}

// localDeps wires dependencies for commands that never touch the API.
func localDeps(root string, cfg *config.Config) ops.Deps {
	return ops.Deps{
		Config:  cfg,
		Logger:  newLogger(),
		BaseDir: root,
	}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(root string, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "aln",
		Usage:   "About Last Night content pipeline",
		Version: Version,
		Commands: []*cli.Command{
			syncCmd(root, cfg),
			graphCmd(root, cfg),
			gapsCmd(root, cfg),
			verifyCmd(root, cfg),
			renderCmd(root, cfg),
			pushCmd(root, cfg),
			archiveLogsCmd(root, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// syncCmd creates the sync command.
func syncCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Generate tokens.json from the document database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output path (defaults to the configured tokens.json)"},
			&cli.StringFlag{Name: "filter-status", Usage: "Only include elements with this Status"},
			&cli.BoolFlag{Name: "render", Usage: "Render display images for tokens with a summary but no image asset"},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(root, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Sync(c.Context, deps, ops.SyncInput{
				OutputPath:   c.String("output"),
				FilterStatus: c.String("filter-status"),
				Render:       c.Bool("render"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// graphCmd creates the graph command.
func graphCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "graph",
		Usage: "Build the knowledge-graph cache",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cache-dir", Usage: "Output directory (defaults to the configured cache dir)"},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(root, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Graph(c.Context, deps, ops.GraphInput{
				CacheDir: c.String("cache-dir"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// gapsCmd creates the gaps command.
func gapsCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "gaps",
		Usage: "Analyze narrative coverage gaps",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the report to this file instead of stdout"},
			&cli.BoolFlag{Name: "html", Usage: "Render the report as HTML"},
			&cli.StringFlag{Name: "json", Usage: "Also dump the raw analysis data to this file"},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(root, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Gaps(c.Context, deps, ops.GapsInput{
				OutputPath: c.String("output"),
				HTML:       c.Bool("html"),
				JSONPath:   c.String("json"),
			})
			if err != nil {
				return outputError(err)
			}

			// The report itself goes to stdout; counts go with it as JSON
			// only when written to a file.
			if output.Report != "" {
				fmt.Print(output.Report)
				return nil
			}
			return outputJSON(output)
		},
	}
}

// verifyCmd creates the verify command.
func verifyCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Cross-check token RFIDs against asset files and attachments",
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(root, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Verify(c.Context, deps, ops.VerifyInput{})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// renderCmd creates the render command.
func renderCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Generate token display images",
		ArgsUsage: "[rfid]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Usage: "Render this text directly instead of the stored summary"},
			&cli.BoolFlag{Name: "placeholder", Usage: "Regenerate the corrupted-memory placeholder image"},
		},
		Action: func(c *cli.Context) error {
			input := ops.RenderInput{
				Text:        c.String("text"),
				Placeholder: c.Bool("placeholder"),
			}
			if c.NArg() > 0 {
				input.RFID = c.Args().First()
			}

			// Placeholder and inline text need no API client.
			var deps ops.Deps
			if input.Placeholder || input.Text != "" {
				deps = localDeps(root, cfg)
			} else {
				var err error
				deps, err = buildDeps(root, cfg)
				if err != nil {
					return outputError(err)
				}
			}

			output, err := ops.Render(c.Context, deps, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pushCmd creates the push command.
func pushCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Create element pages for approved draft tokens",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(root, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Push(c.Context, deps, ops.PushInput{
				Yes:     c.Bool("yes"),
				Confirm: promptConfirm,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// archiveLogsCmd creates the archive-logs command.
func archiveLogsCmd(root string, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "archive-logs",
		Usage: "Move old log lines into per-date archive files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "logs-dir", Usage: "Log directory (defaults to the configured one)"},
			&cli.IntFlag{Name: "cutoff-days", Usage: "Archive lines older than this many days"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ArchiveLogs(c.Context, localDeps(root, cfg), ops.ArchiveLogsInput{
				LogsDir:    c.String("logs-dir"),
				CutoffDays: c.Int("cutoff-days"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// promptConfirm prints the summary and reads a yes/no answer from stdin.
func promptConfirm(summary string) bool {
	fmt.Println(summary)
	fmt.Print("Proceed? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

// outputJSON prints the result as formatted JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pErr, ok := err.(*errors.PipelineError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
