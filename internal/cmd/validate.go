package cmd

import (
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/validate"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// validateCommand computes a range of epoch boundaries and compares the
// results with the pots and pool rewards recorded by the chain.
var validateCommand = cli.Command{
	Action:    validateEpochs,
	Name:      "validate",
	Usage:     "compares computed pots and pool rewards with the recorded ones",
	ArgsUsage: "--from <epoch> [--to <epoch>]",
	Flags: []cli.Flag{
		&fromFlag,
		&toFlag,
		&allFlag,
	},
}

// validateEpochs fails with validate.ErrMismatch, if any epoch of the range
// differs from the recorded amounts.
func validateEpochs(ctx *cli.Context) error {
	from, to, err := epochRange(ctx)
	if err != nil {
		return err
	}
	s, err := loadSources(ctx)
	if err != nil {
		return err
	}
	validator := validate.NewValidator(s.provider, s.observations)
	engine := rewards.NewEngine(s.policy, ctx.Int(workersFlag.Name))
	var mismatch error
	err = computeRange(ctx.Context, s, engine, from, to,
		func(in *rewards.EpochInputs, result *rewards.EpochResult) error {
			report, err := validator.Validate(ctx.Context, result)
			if err != nil {
				return err
			}
			report.Render(ctx.App.Writer, ctx.Bool(allFlag.Name))
			if err := report.Err(); err != nil {
				log.Warn(err.Error())
				mismatch = err
			}
			return nil
		})
	if err != nil {
		return err
	}
	return mismatch
}
