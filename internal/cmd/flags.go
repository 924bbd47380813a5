package cmd

import (
	"github.com/urfave/cli/v2"
	"runtime"
)

var (
	levelFlag = cli.StringFlag{
		Name:  "level",
		Usage: "level of logging",
		Value: "info",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Usage: "format of the log output (text or json)",
		Value: "text",
	}
	networkFlag = cli.StringFlag{
		Name:    "network",
		Usage:   "name of a built-in network",
		Value:   "mainnet",
		EnvVars: []string{"BLU_NETWORK"},
	}
	networkFileFlag = cli.PathFlag{
		Name:  "network-file",
		Usage: "YAML file defining the network, which takes precedence over --network",
	}
	snapshotDirFlag = cli.PathFlag{
		Name:    "snapshot-dir",
		Usage:   "directory with the epoch snapshot files",
		Value:   "snapshots",
		EnvVars: []string{"BLU_SNAPSHOT_DIR"},
	}
	blockfrostFlag = cli.BoolFlag{
		Name:  "blockfrost",
		Usage: "take protocol parameters, epoch facts, observed pool rewards and the tip from Blockfrost (BLU_BLOCKFROST_API_KEY)",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of workers computing pool rewards",
		Value: runtime.NumCPU(),
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Usage: "number of inputs kept in the epoch cache",
		Value: 64,
	}

	hostnameFlag = cli.StringFlag{
		Name:  "hostname",
		Usage: "location at which the API shall be served",
		Value: "localhost",
	}
	portFlag = cli.IntFlag{
		Name:  "port",
		Usage: "port on which the API shall be served",
		Value: 9001,
	}
	dbPathFlag = cli.PathFlag{
		Name:    "db-path",
		Usage:   "path to the directory with the rewards db",
		Value:   ".db",
		EnvVars: []string{"BLU_DB_PATH"},
	}
	startEpochFlag = cli.UintFlag{
		Name:  "start-epoch",
		Usage: "first epoch to compute, if the db holds no results (defaults to the first Shelley epoch)",
	}
	tipIntervalFlag = cli.DurationFlag{
		Name:  "tip-interval",
		Usage: "interval in which the tip of the chain is fetched",
		Value: defaultTipInterval,
	}
	usernameFlag = cli.StringFlag{
		Name:     "username",
		Usage:    "username for recomputing epochs through the API",
		EnvVars:  []string{"BLU_AUTH_USERNAME"},
		Required: true,
	}
	passwordFlag = cli.StringFlag{
		Name:     "password",
		Usage:    "password for recomputing epochs through the API",
		EnvVars:  []string{"BLU_AUTH_PASSWORD"},
		Required: true,
	}

	fromFlag = cli.IntFlag{
		Name:     "from",
		Usage:    "first epoch boundary to compute",
		Required: true,
	}
	toFlag = cli.IntFlag{
		Name:  "to",
		Usage: "last epoch boundary to compute (defaults to --from)",
	}
	storeFlag = cli.BoolFlag{
		Name:  "store",
		Usage: "store the computed results in the rewards db at --db-path",
	}
	allFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "list all comparisons instead of only the mismatches",
	}
)
