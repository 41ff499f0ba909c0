package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-argdoc/pkg/orchestrator"
	"github.com/goliatone/go-argdoc/pkg/source"
)

const description = `Reads meta/argument_specs.yml, meta/main.yml and the optional meta/badges.yml,
renders the option tables, and writes README.md from the README template.

Templates are rendered with pongo2, which implements the Django template
language. It covers the Jinja2 basics ({{ var }}, {% if %}, {% for %},
{% include %} relative to the template directory) but not Jinja2-only
syntax: filter arguments use a colon (default:"x" rather than default('x'))
and method calls such as dict.items() are not available. Loop over a
mapping with {% for key, value in meta.galaxy_info %} instead.`

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp(os.Stderr).Run(args)
}

// newApp builds the CLI. extra options are appended after the defaults so
// callers can redirect paths and the template source.
func newApp(logOut io.Writer, extra ...orchestrator.Option) *cli.App {
	return &cli.App{
		Name:        "argdoc",
		Usage:       "render README.md from meta/argument_specs.yml and a pongo2 (Django-style) README template",
		Version:     versioninfo.Short(),
		ArgsUsage:   " ",
		Description: description,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "offline",
				Aliases: []string{"o"},
				Usage:   "only use the local template at " + source.DefaultLocalPath + "; never download",
				EnvVars: []string{"ARGDOC_OFFLINE"},
			},
		},
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() > 0 {
				return fmt.Errorf("unexpected arguments: %v", cctx.Args().Slice())
			}

			logger := slog.New(slog.NewTextHandler(logOut, nil))

			mode := source.ModeRemote
			if cctx.Bool("offline") {
				mode = source.ModeLocal
			}

			options := append([]orchestrator.Option{orchestrator.WithLogger(logger)}, extra...)
			result, err := orchestrator.New(options...).Generate(cctx.Context, orchestrator.Request{Mode: mode})
			if err != nil {
				return err
			}
			if result.RenderErr != nil {
				logger.Warn("README was not updated", "output", result.OutputPath)
			}
			return nil
		},
	}
}
