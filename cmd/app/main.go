package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/othala/internal"
	"github.com/starford/othala/internal/indexer"
	"github.com/starford/othala/internal/mcpserver"
	"github.com/starford/othala/internal/models"
	pkgconfig "github.com/starford/othala/pkg/config"
)

// setup loads configuration and wires the application for one command.
func setup(cmd *cli.Command) (*internal.App, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return internal.Setup(internal.WithConfig(cfg))
}

// withApp wraps an action with application setup and teardown.
func withApp(fn func(ctx context.Context, cmd *cli.Command, app *internal.App) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(ctx, cmd, app)
	}
}

func printZettels(zs []models.Zettel) {
	for _, z := range zs {
		fmt.Println(z.Key())
	}
}

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Println(l)
	}
}

// requireArgs returns the first n positional arguments, or an error naming
// the missing one.
func requireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < len(names) {
		return nil, fmt.Errorf("missing required argument: %s", names[len(args)])
	}
	return args[:len(names)], nil
}

func main() {
	cmd := &cli.Command{
		Name:  "othala",
		Usage: "Index and query a plain-text Zettelkasten: titles, tags, links, backlinks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("OTHALA_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "sync",
				Aliases: []string{"generate"},
				Usage:   "Rebuild the whole index from the note collection",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					stats, err := indexer.Rebuild(ctx, app.Vault, app.Store, app.Logger)
					if err != nil {
						return err
					}
					fmt.Printf("indexed %d zettels", stats.Indexed)
					if stats.Failed > 0 {
						fmt.Printf(", %d failed", stats.Failed)
					}
					fmt.Println()
					for _, e := range stats.Errors {
						fmt.Fprintln(os.Stderr, e)
					}
					return nil
				}),
			},
			{
				Name:      "query",
				Usage:     "List zettels whose title matches an SQL LIKE pattern",
				ArgsUsage: "PATTERN",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "PATTERN")
					if err != nil {
						return err
					}
					zs, err := app.Query.FindByTitle(args[0])
					if err != nil {
						return err
					}
					printZettels(zs)
					return nil
				}),
			},
			{
				Name:      "find",
				Usage:     "List zettels carrying exactly the given tag",
				ArgsUsage: "TAG",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TAG")
					if err != nil {
						return err
					}
					zs, err := app.Query.FindByTag(args[0])
					if err != nil {
						return err
					}
					printZettels(zs)
					return nil
				}),
			},
			{
				Name:      "backlinks",
				Usage:     "List zettels linking to TITLE",
				ArgsUsage: "TITLE",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TITLE")
					if err != nil {
						return err
					}
					zs, err := app.Query.Backlinks(args[0])
					if err != nil {
						return err
					}
					printZettels(zs)
					return nil
				}),
			},
			{
				Name:      "links",
				Usage:     "List titles that zettels matching TITLE link to",
				ArgsUsage: "TITLE",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TITLE")
					if err != nil {
						return err
					}
					links, err := app.Query.Links(args[0])
					if err != nil {
						return err
					}
					printLines(links)
					return nil
				}),
			},
			{
				Name:      "search",
				Usage:     "List zettels whose note contents match the text, case-insensitively",
				ArgsUsage: "TEXT",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TEXT")
					if err != nil {
						return err
					}
					zs, err := app.Query.Search(args[0])
					if err != nil {
						return err
					}
					printZettels(zs)
					return nil
				}),
			},
			{
				Name:  "ghosts",
				Usage: "List titles that are linked to but not yet created",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					titles, err := app.Query.Ghosts()
					if err != nil {
						return err
					}
					printLines(titles)
					return nil
				}),
			},
			{
				Name:  "isolated",
				Usage: "List zettels with no inbound and no outbound links",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					zs, err := app.Query.Isolated()
					if err != nil {
						return err
					}
					printZettels(zs)
					return nil
				}),
			},
			{
				Name:  "list-tags",
				Usage: "List all tags in use",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					tags, err := app.Query.ListTags()
					if err != nil {
						return err
					}
					printLines(tags)
					return nil
				}),
			},
			{
				Name:  "list-projects",
				Usage: "List all projects in use",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					projects, err := app.Query.ListProjects()
					if err != nil {
						return err
					}
					printLines(projects)
					return nil
				}),
			},
			{
				Name:  "ls",
				Usage: "List every indexed zettel",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					zs, err := app.Store.All()
					if err != nil {
						return err
					}
					printZettels(zs)
					return nil
				}),
			},
			{
				Name:      "new",
				Usage:     "Create a new zettel and index it",
				ArgsUsage: "TITLE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "project",
						Aliases: []string{"p"},
						Usage:   "Project to create the zettel in (root when omitted)",
					},
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TITLE")
					if err != nil {
						return err
					}
					z, err := app.Zettels.Create(args[0], cmd.String("project"))
					if err != nil {
						return err
					}
					path, err := app.Zettels.Path(z)
					if err != nil {
						return err
					}
					fmt.Println(path)
					return nil
				}),
			},
			{
				Name:      "update",
				Usage:     "Re-extract one note and replace its record",
				ArgsUsage: "FILENAME",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "FILENAME")
					if err != nil {
						return err
					}
					if _, err := app.Zettels.Update(args[0]); err != nil {
						return err
					}
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "Remove a zettel's record from the index",
				ArgsUsage: "TITLE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "project", Aliases: []string{"p"}},
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TITLE")
					if err != nil {
						return err
					}
					return app.Zettels.Delete(args[0], cmd.String("project"))
				}),
			},
			{
				Name:      "rename",
				Usage:     "Rename a zettel, moving its file and record",
				ArgsUsage: "TITLE NEW_TITLE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "project", Aliases: []string{"p"}},
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TITLE", "NEW_TITLE")
					if err != nil {
						return err
					}
					z := models.Zettel{Title: args[0], Project: cmd.String("project")}
					return app.Zettels.RenameTitle(z, args[1])
				}),
			},
			{
				Name:      "move",
				Usage:     "Move a zettel to another project",
				ArgsUsage: "TITLE NEW_PROJECT",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "Current project"},
				},
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "TITLE", "NEW_PROJECT")
					if err != nil {
						return err
					}
					z := models.Zettel{Title: args[0], Project: cmd.String("project")}
					return app.Zettels.MoveProject(z, args[1])
				}),
			},
			{
				Name:      "backup",
				Usage:     "Snapshot the index database to a file",
				ArgsUsage: "PATH",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					args, err := requireArgs(cmd, "PATH")
					if err != nil {
						return err
					}
					return app.Zettels.Backup(args[0])
				}),
			},
			{
				Name:  "path",
				Usage: "Print the path to the note collection",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					fmt.Println(app.Vault.Root())
					return nil
				}),
			},
			{
				Name:  "watch",
				Usage: "Watch the note collection and rebuild the index on changes",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					return indexer.Watch(ctx, app.Vault, app.Store, app.Logger)
				}),
			},
			{
				Name:  "mcp",
				Usage: "Serve the index over the Model Context Protocol on stdio",
				Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
					srv := mcpserver.New(app.Vault, app.Query)
					return srv.ServeStdio()
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
