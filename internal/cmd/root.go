package cmd

import (
	"context"
	"github.com/blockblu-io/rewards-verifier/pkg/logging"
	"github.com/urfave/cli/v2"
	"os"
	"os/signal"
	"syscall"
)

// app is the command line application verifying the epoch pots and rewards
// of a Cardano network.
var app = cli.App{
	Name:     "rewards-verifier",
	HelpName: "rewards-verifier",
	Usage:    "computes and verifies the ada pots and rewards at epoch boundaries",
	Flags: []cli.Flag{
		&levelFlag,
		&logFormatFlag,
		&networkFlag,
		&networkFileFlag,
		&snapshotDirFlag,
		&blockfrostFlag,
		&workersFlag,
		&cacheSizeFlag,
	},
	Before: func(ctx *cli.Context) error {
		return logging.InitLogging(ctx.String(levelFlag.Name), ctx.String(logFormatFlag.Name))
	},
	Commands: []*cli.Command{
		&serveCommand,
		&computeCommand,
		&validateCommand,
	},
}

// Run runs the application with the arguments of this process until it is
// interrupted, and exits with a non-zero code, if it failed.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.RunContext(ctx, os.Args)
	stop()
	handleProgramError(err)
}
