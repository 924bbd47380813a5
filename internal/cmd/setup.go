package cmd

import (
	"context"
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/chain/blockfrost"
	"github.com/blockblu-io/rewards-verifier/pkg/chain/snapshot"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// sources bundles the collaborators configured by the global flags.
type sources struct {
	policy       *era.Policy
	provider     chain.Provider
	observations chain.ObservationSource
	tips         chain.TipSource
}

// loadPolicy returns the era policy of the network given by the flags.
func loadPolicy(ctx *cli.Context) (*era.Policy, error) {
	var network *era.Network
	var err error
	if path := ctx.Path(networkFileFlag.Name); path != "" {
		network, err = era.LoadNetwork(path)
	} else {
		network, err = era.ByName(ctx.String(networkFlag.Name))
	}
	if err != nil {
		return nil, err
	}
	return era.NewPolicy(network), nil
}

// loadSources creates the provider of the epoch inputs from the snapshot
// directory, overlaid with Blockfrost if requested, behind an epoch cache.
func loadSources(ctx *cli.Context) (*sources, error) {
	policy, err := loadPolicy(ctx)
	if err != nil {
		return nil, err
	}
	files, err := snapshot.NewProvider(ctx.Path(snapshotDirFlag.Name))
	if err != nil {
		return nil, err
	}
	s := &sources{policy: policy, provider: files, observations: files, tips: files}
	if ctx.Bool(blockfrostFlag.Name) {
		backend, err := blockfrost.NewBlockFrostBackend()
		if err != nil {
			return nil, err
		}
		s.provider = chain.WithParameters(files, backend)
		s.observations = backend
		s.tips = backend
	}
	cache, err := chain.NewEpochCache(s.provider, ctx.Int(cacheSizeFlag.Name))
	if err != nil {
		return nil, err
	}
	s.provider = cache
	log.Infof("using '%s' for network '%s'", s.provider.Name(), policy.Network().Name)
	return s, nil
}

// epochRange returns the epochs given by --from and --to.
func epochRange(ctx *cli.Context) (int, int, error) {
	from := ctx.Int(fromFlag.Name)
	to := from
	if ctx.IsSet(toFlag.Name) {
		to = ctx.Int(toFlag.Name)
	}
	if from < 0 || to < from {
		return 0, 0, fmt.Errorf("the epoch range [%d,%d] must not be empty nor negative", from, to)
	}
	return from, to, nil
}

// computeRange computes the given epochs in ascending order. The pots of
// each result are the previous pots of the next epoch. The given function
// is called with the inputs and the result of every epoch.
func computeRange(ctx context.Context, s *sources, engine *rewards.Engine, from, to int,
	f func(in *rewards.EpochInputs, result *rewards.EpochResult) error) error {
	var previous *rewards.AdaPots
	for epoch := from; epoch <= to; epoch++ {
		in, err := chain.Collect(ctx, s.provider, s.policy, epoch, previous)
		if err != nil {
			return err
		}
		result, err := engine.ComputeEpoch(ctx, in)
		if err != nil {
			return err
		}
		if err := f(in, result); err != nil {
			return err
		}
		previous = result.Pots()
	}
	return nil
}
