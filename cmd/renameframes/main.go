package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tauraamui/dragonframes/internal/runner"
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/urfave/cli/v3"
)

func command() *cli.Command {
	return &cli.Command{
		Name:  "renameframes",
		Usage: "Rename frame_XXXXX.jpg files in place to XXXXX.jpg",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "frames-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the prefixed frames",
				Sources: cli.EnvVars("DRAGON_FRAMES_DIR"),
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Prefix to strip, without the trailing underscore",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record this run in the run ledger",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path of the run ledger database",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init-config",
				Usage: "Write the default config file",
				Action: func(context.Context, *cli.Command) error {
					return runner.InitConfig()
				},
			},
			runsCommand(),
		},
		Action: rename,
	}
}

func rename(ctx context.Context, cmd *cli.Command) error {
	values, err := runner.LoadConfig()
	if err != nil {
		return err
	}

	if cmd.IsSet("frames-dir") {
		values.Rename.FramesDir = cmd.String("frames-dir")
	}
	if cmd.IsSet("prefix") {
		values.Rename.Prefix = cmd.String("prefix")
	}
	if cmd.IsSet("record") {
		values.RecordRuns = cmd.Bool("record")
	}
	if cmd.IsSet("db") {
		values.DatabasePath = cmd.String("db")
	}

	if err := values.RunValidate(); err != nil {
		return err
	}

	_, err = runner.Rename(ctx, values)
	return err
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List recorded runs from the run ledger, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: models.KindRename,
				Usage: "Kind of run to list: rename or extract",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "Maximum number of runs to list",
			},
			&cli.StringFlag{
				Name:  "uuid",
				Usage: "Show only the run with this id",
			},
		},
		Action: runs,
	}
}

func runs(_ context.Context, cmd *cli.Command) error {
	values, err := runner.LoadConfig()
	if err != nil {
		return err
	}

	if cmd.IsSet("db") {
		values.DatabasePath = cmd.String("db")
	}

	if cmd.IsSet("uuid") {
		_, err = runner.ShowRun(values, cmd.String("uuid"))
		return err
	}

	_, err = runner.ListRuns(values, cmd.String("kind"), int(cmd.Int("limit")))
	return err
}

func init() {
	log.Configure(os.Getenv(log.LevelEnv))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		log.Error("%s", err.Error())
		stop()
		os.Exit(1)
	}
}
