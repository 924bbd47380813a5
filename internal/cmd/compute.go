package cmd

import (
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"github.com/blockblu-io/rewards-verifier/pkg/db/sqlite"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"io"
	"time"
)

// computeCommand computes a range of epoch boundaries from the configured
// sources and prints the resulting pots.
var computeCommand = cli.Command{
	Action:    compute,
	Name:      "compute",
	Usage:     "computes the pots and rewards of a range of epoch boundaries",
	ArgsUsage: "--from <epoch> [--to <epoch>]",
	Flags: []cli.Flag{
		&fromFlag,
		&toFlag,
		&storeFlag,
		&dbPathFlag,
		&allFlag,
	},
}

func compute(ctx *cli.Context) error {
	from, to, err := epochRange(ctx)
	if err != nil {
		return err
	}
	s, err := loadSources(ctx)
	if err != nil {
		return err
	}
	var idb db.DB
	if ctx.Bool(storeFlag.Name) {
		idb, err = sqlite.NewSQLiteDB(ctx.Path(dbPathFlag.Name))
		if err != nil {
			return err
		}
		defer idb.Close()
	}
	engine := rewards.NewEngine(s.policy, ctx.Int(workersFlag.Name))
	w := ctx.App.Writer
	return computeRange(ctx.Context, s, engine, from, to,
		func(in *rewards.EpochInputs, result *rewards.EpochResult) error {
			printEpoch(w, result)
			if ctx.Bool(allFlag.Name) {
				printPools(w, in, result)
			}
			if idb == nil {
				return nil
			}
			return idb.WriteEpochResult(ctx.Context,
				db.NewEpochResult(s.policy.Network().Name, result, time.Now()))
		})
}

// printEpoch writes the pots of the given result to the writer.
func printEpoch(w io.Writer, r *rewards.EpochResult) {
	bold := color.New(color.Bold).SprintfFunc()
	output(w, "Epoch:\t\t%s (%s)\n", bold("%d", r.Epoch), r.State)
	output(w, "Reserves:\t%s\n", bold("%s", r.Reserves))
	output(w, "Treasury:\t%s\n", bold("%s", r.Treasury))
	output(w, "Deposits:\t%s\n", bold("%s", r.Deposits))
	output(w, "Rewards Pot:\t%s\n", bold("%s", r.TotalRewardsPot))
	output(w, "Distributed:\t%s\n", bold("%s", r.TotalDistributedRewards))
	output(w, "Eta:\t\t%s\n", bold("%s", r.Eta))
	if len(r.Diagnostics) > 0 {
		output(w, "Diagnostics:\t%s\n", color.YellowString("%d", len(r.Diagnostics)))
	}
}

// printPools writes a table with the rewards of every pool to the writer.
func printPools(w io.Writer, in *rewards.EpochInputs, r *rewards.EpochResult) {
	if len(r.PerPoolResults) == 0 {
		return
	}
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Pool", "Performance", "Pool Reward", "Operator", "Distributed", "Member ROS %"})
	tbl.SetBorder(true)
	for _, p := range r.PerPoolResults {
		tbl.Append([]string{
			p.PoolID,
			p.ApparentPerformance.StringFixed(4),
			p.PoolReward.String(),
			p.OperatorReward.String(),
			p.DistributedPoolReward.String(),
			p.MemberReturnOnStake(in.PoolStates[p.PoolID]).String(),
		})
	}
	tbl.Render()
}

func output(w io.Writer, format string, a ...any) {
	_, err := fmt.Fprintf(w, format, a...)
	handleProgramError(err)
}
