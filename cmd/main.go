package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/smarthome-go/ueval/ueval/config"
	"github.com/smarthome-go/ueval/ueval/diagnostic"
)

const programName = "ueval"
const version = "latest"

var errDiagnostics = errors.New("Encountered error diagnostic(s)")

func fileValidator(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("Expected exactly one argument <file>")
	}
	return nil
}

// newSession loads the configuration and applies the global flags on top of it.
func newSession(ctx *cli.Context) (session, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(ctx.String("config"))
	if err != nil {
		return session{}, err
	}

	if ctx.IsSet("trace") {
		cfg.Output.Trace = ctx.Bool("trace")
	}
	if ctx.IsSet("color") {
		cfg.Output.Color = config.ColorMode(ctx.String("color"))
		if err := config.Validate(cfg); err != nil {
			return session{}, err
		}
	}

	return session{
		cfg:    cfg,
		logger: newLogger(cfg, os.Stderr, useColor(cfg.Output.Color, os.Stderr)),
		color:  useColor(cfg.Output.Color, os.Stdout),
	}, nil
}

func main() {
	// nolint:exhaustruct
	app := &cli.App{
		Name:     programName,
		Usage:    "Compute the values of Java expressions without running them",
		Version:  version,
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "The Smarthome Authors",
				Email: "",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Load settings from this YAML file",
				Aliases: []string{"c"},
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Trace the evaluator on stderr",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colorize diagnostics: auto, always or never",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "Print the final bindings and return values of every method",
				ArgsUsage: "[files...]",
				Args:      true,
				Before: func(ctx *cli.Context) error {
					if ctx.Args().Len() == 0 {
						return fmt.Errorf("Expected at least one argument <file>")
					}
					return nil
				},
				Action: func(ctx *cli.Context) error {
					session, err := newSession(ctx)
					if err != nil {
						return err
					}

					return session.evalFiles(ctx.Args().Slice(), os.Stdout)
				},
			},
			{
				Name:      "inspect",
				Usage:     "Print the diagnostics of the optimizer",
				ArgsUsage: "[file]",
				Args:      true,
				Before:    fileValidator,
				Action: func(ctx *cli.Context) error {
					session, err := newSession(ctx)
					if err != nil {
						return err
					}

					_, diagnostics, err := session.analyzeFile(ctx.Args().First(), os.Stdout, true)
					if err != nil {
						return err
					}

					if len(diagnostics) == 0 {
						log.Println("No diagnostics")
					}

					for _, item := range diagnostics {
						if item.Level == diagnostic.DiagnosticLevelError {
							return errDiagnostics
						}
					}

					return nil
				},
			},
			{
				Name:      "dump",
				Usage:     "Print every expression of a method together with its value",
				ArgsUsage: "[file] [method]",
				Args:      true,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "raw",
						Usage:   "Dump the internal structure of every value",
						Aliases: []string{"r"},
					},
				},
				Before: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 2 {
						return fmt.Errorf("Expected exactly two arguments <file> <method>")
					}
					return nil
				},
				Action: func(ctx *cli.Context) error {
					session, err := newSession(ctx)
					if err != nil {
						return err
					}

					filename, methodName := ctx.Args().Get(0), ctx.Args().Get(1)

					result, _, err := session.analyzeFile(filename, os.Stdout, false)
					if err != nil {
						return err
					}

					method, found := result.File.Method(methodName)
					if !found {
						return fmt.Errorf("Method `%s` is not declared in `%s`", methodName, filename)
					}

					return dumpMethod(result, method, ctx.Bool("raw"), os.Stdout)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
