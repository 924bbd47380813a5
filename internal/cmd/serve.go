package cmd

import (
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/api"
	"github.com/blockblu-io/rewards-verifier/pkg/auth"
	"github.com/blockblu-io/rewards-verifier/pkg/chain/syncer"
	"github.com/blockblu-io/rewards-verifier/pkg/db/sqlite"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/urfave/cli/v2"
	"time"
)

const defaultTipInterval = 5 * time.Minute

// serveCommand syncs the epoch results into the rewards db and serves them
// through the API.
var serveCommand = cli.Command{
	Action: serve,
	Name:   "serve",
	Usage:  "computes reached epoch boundaries continuously and serves the results",
	Flags: []cli.Flag{
		&hostnameFlag,
		&portFlag,
		&dbPathFlag,
		&startEpochFlag,
		&tipIntervalFlag,
		&usernameFlag,
		&passwordFlag,
	},
}

func serve(ctx *cli.Context) error {
	port := ctx.Int(portFlag.Name)
	if port <= 0 || port > 65535 {
		return fmt.Errorf("the port must be between 1 and 65535, but was %d", port)
	}
	authenticator, err := auth.NewCredentialsAuthentication(ctx.String(usernameFlag.Name),
		ctx.String(passwordFlag.Name))
	if err != nil {
		return err
	}
	s, err := loadSources(ctx)
	if err != nil {
		return err
	}

	sqliteDB, err := sqlite.NewSQLiteDB(ctx.Path(dbPathFlag.Name))
	if err != nil {
		return err
	}
	defer sqliteDB.Close()

	start := uint(s.policy.Network().ShelleyStartEpoch)
	if ctx.IsSet(startEpochFlag.Name) {
		start = ctx.Uint(startEpochFlag.Name)
	}
	engine := rewards.NewEngine(s.policy, ctx.Int(workersFlag.Name))
	sync := syncer.NewSyncer(s.provider, engine, sqliteDB, start)
	tips := syncer.NewTipUpdater()
	tips.Run(ctx.Context, s.tips, ctx.Duration(tipIntervalFlag.Name))
	go sync.Run(ctx.Context, tips)

	return api.Serve(ctx.String(hostnameFlag.Name), port, sqliteDB, sync, authenticator)
}
