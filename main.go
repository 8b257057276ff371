package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"pav/analyzer"
)

func validateCondition(s string) error {
	_, err := analyzer.ParseCondition(s)
	return err
}

func RootCommand() *cli.Command {
	cmd := &cli.Command{
		Name:      "pav",
		Usage:     "list the external python modules a project imports",
		ArgsUsage: "[project-dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:             "exist",
				Usage:            "keep only modules that are (true) or are not (false) installed on this host",
				Sources:          cli.EnvVars("PAV_EXIST"),
				Validator:        validateCondition,
				ValidateDefaults: true,
			},
			&cli.StringFlag{
				Name:             "standard",
				Usage:            "keep only modules that are (true) or are not (false) part of the standard library",
				Sources:          cli.EnvVars("PAV_STANDARD"),
				Validator:        validateCondition,
				ValidateDefaults: true,
			},
			&cli.StringFlag{
				Name:    "python",
				Usage:   "python interpreter used to resolve modules (default: python3 or python on PATH)",
				Sources: cli.EnvVars("PAV_PYTHON"),
			},
			&cli.StringFlag{
				Name:             "format",
				Value:            "text",
				Usage:            "output format: text, json or yaml",
				Sources:          cli.EnvVars("PAV_FORMAT"),
				Validator:        validateFormat,
				ValidateDefaults: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write requirements to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return ctx, nil
		},

		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().Get(0)
			if dir == "" {
				dir = "."
			}

			exist, err := analyzer.ParseCondition(cmd.String("exist"))
			if err != nil {
				return err
			}
			standard, err := analyzer.ParseCondition(cmd.String("standard"))
			if err != nil {
				return err
			}

			slog.Info("find python requirements.", "dir", dir, "exist", exist, "standard", standard)

			names, err := listRequirements(ctx, dir, options{
				Exist:       exist,
				Standard:    standard,
				Interpreter: cmd.String("python"),
			})
			if err != nil {
				return err
			}

			if out := cmd.String("output"); out != "" {
				return writeRequirementsFile(out, cmd.String("format"), names)
			}
			return writeRequirements(cmd.Root().Writer, cmd.String("format"), names)
		},
	}
	return cmd
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	cmd := RootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("exited", "error", err)
		os.Exit(1)
	}
}
