package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tauraamui/dragonframes/internal/runner"
	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/urfave/cli/v3"
)

func command() *cli.Command {
	return &cli.Command{
		Name:  "extractframes",
		Usage: "Extract every frame of a video into zero padded JPEG files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "video",
				Aliases: []string{"i"},
				Usage:   "Path of the video to extract frames from",
				Sources: cli.EnvVars("DRAGON_FRAMES_VIDEO"),
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory the frames are written into, created if missing",
				Sources: cli.EnvVars("DRAGON_FRAMES_OUTPUT_DIR"),
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Optional filename prefix, frames are named <prefix>_00000.jpg",
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Video backend: opencv or mock",
				Sources: cli.EnvVars("DRAGON_VIDEO_BACKEND"),
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
		Action: extract,
	}
}

func extract(ctx context.Context, cmd *cli.Command) error {
	values, err := runner.LoadConfig()
	if err != nil {
		return err
	}

	if cmd.IsSet("video") {
		values.Extract.VideoPath = cmd.String("video")
	}
	if cmd.IsSet("output-dir") {
		values.Extract.OutputDir = cmd.String("output-dir")
	}
	if cmd.IsSet("prefix") {
		values.Extract.FramePrefix = cmd.String("prefix")
	}
	if cmd.IsSet("backend") {
		values.VideoBackend = cmd.String("backend")
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

	if _, err := runner.Extract(ctx, values); err != nil {
		return extractFailure{err}
	}
	return nil
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List recorded runs from the run ledger, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: models.KindExtract,
				Usage: "Kind of run to list: extract or rename",
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

// extractFailure marks errors raised by the extraction pass itself, the
// only ones the operator hints apply to.
type extractFailure struct {
	err error
}

func (e extractFailure) Error() string { return e.err.Error() }

func (e extractFailure) Unwrap() error { return e.err }

func run(ctx context.Context, args []string) error {
	err := command().Run(ctx, args)
	if err == nil {
		return nil
	}

	log.Error("%s", err.Error())
	if errors.As(err, &extractFailure{}) {
		log.Error("Make sure:")
		log.Error("1. The video file exists at the specified path")
		log.Error("2. You have write permissions to the output directory")
		log.Error("3. OpenCV is properly installed (or use --backend %s)", configdef.BackendMock)
	}
	return err
}

func init() {
	log.Configure(os.Getenv(log.LevelEnv))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args); err != nil {
		stop()
		os.Exit(1)
	}
}
