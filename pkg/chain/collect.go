package chain

import (
	"context"
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	log "github.com/sirupsen/logrus"
	"sort"
)

// Collect gathers the inputs for computing the boundary of the given epoch
// from the provider. The reward update applied at the boundary of epoch e
// is based on the parameters, fees, blocks and stake snapshot of e-2 and on
// the MIR certificates and pool deposits of e-1. The given previous pots are
// used, if they are not nil. Otherwise, the pots at the boundary of e-1 are
// taken from the provider.
func Collect(ctx context.Context, provider Provider, policy *era.Policy, epoch int,
	previous *rewards.AdaPots) (*rewards.EpochInputs, error) {
	in := &rewards.EpochInputs{Epoch: epoch, PreviousPots: previous}
	if policy.Phase(epoch) != era.SteadyState {
		return in, nil
	}
	stakeEpoch := epoch - 2
	var err error
	if in.PreviousPots == nil {
		in.PreviousPots, err = provider.AdaPots(ctx, epoch-1)
		if err != nil {
			return nil, fmt.Errorf("collecting the pots of epoch %d from %s: %w", epoch-1, provider.Name(), err)
		}
	}
	in.Parameters, err = provider.ProtocolParameters(ctx, stakeEpoch)
	if err != nil {
		return nil, fmt.Errorf("collecting the parameters of epoch %d from %s: %w", stakeEpoch,
			provider.Name(), err)
	}
	in.Info, err = provider.EpochInfo(ctx, stakeEpoch)
	if err != nil {
		return nil, fmt.Errorf("collecting the facts of epoch %d from %s: %w", stakeEpoch, provider.Name(), err)
	}
	in.PoolStates, err = provider.PoolStates(ctx, stakeEpoch)
	if err != nil {
		return nil, fmt.Errorf("collecting the pools of epoch %d from %s: %w", stakeEpoch, provider.Name(), err)
	}
	in.BlockProducers, err = provider.BlockProducers(ctx, stakeEpoch)
	if err != nil {
		return nil, fmt.Errorf("collecting the block producers of epoch %d from %s: %w", stakeEpoch,
			provider.Name(), err)
	}
	in.MirCertificates, err = provider.MirCertificates(ctx, epoch-1)
	if err != nil {
		return nil, fmt.Errorf("collecting the MIR certificates of epoch %d from %s: %w", epoch-1,
			provider.Name(), err)
	}
	in.PoolRegistrations, err = provider.PoolRegistrations(ctx, epoch-1)
	if err != nil {
		return nil, fmt.Errorf("collecting the pool deposits of epoch %d from %s: %w", epoch-1,
			provider.Name(), err)
	}
	certificates, err := provider.PoolCertificates(ctx, epoch)
	if err != nil {
		return nil, fmt.Errorf("collecting the pool certificates for epoch %d from %s: %w", epoch,
			provider.Name(), err)
	}
	in.RetiredPools = rewards.ResolveRetirements(epoch, certificates)
	suppressed, err := provider.SuppressedLeaderRewards(ctx, epoch)
	if err != nil {
		return nil, fmt.Errorf("collecting the suppressed leader rewards of epoch %d from %s: %w", epoch,
			provider.Name(), err)
	}
	addresses := accountsOfInterest(in.PoolStates, in.RetiredPools)
	events, err := provider.AccountEvents(ctx, epoch, addresses)
	if err != nil {
		return nil, fmt.Errorf("collecting the account events for epoch %d from %s: %w", epoch,
			provider.Name(), err)
	}
	in.Facts = rewards.BuildRegistrationFacts(policy, epoch, events, rewards.NewSet(suppressed...))
	log.WithFields(log.Fields{
		"epoch":    epoch,
		"provider": provider.Name(),
		"pools":    len(in.PoolStates),
		"leaders":  len(in.BlockProducers),
		"retired":  len(in.RetiredPools),
		"accounts": len(addresses),
	}).Debug("collected epoch inputs")
	return in, nil
}

// accountsOfInterest returns the sorted stake addresses that can receive a
// reward or a refund.
func accountsOfInterest(pools map[string]*rewards.PoolState, retired []rewards.RetiredPool) []string {
	set := map[string]struct{}{}
	for _, pool := range pools {
		set[pool.RewardAddress] = struct{}{}
		for owner := range pool.Owners {
			set[owner] = struct{}{}
		}
		for _, d := range pool.Delegators {
			set[d.StakeAddress] = struct{}{}
		}
	}
	for _, r := range retired {
		set[r.RewardAddress] = struct{}{}
	}
	delete(set, "")
	addresses := make([]string, 0, len(set))
	for address := range set {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// overlay is a Provider whose parameters and epoch facts are taken from
// another source.
type overlay struct {
	Provider
	source ParameterSource
}

// WithParameters returns a provider that takes the protocol parameters and
// the epoch facts from the given source and everything else from the given
// provider. An active stake missing in the facts of the source is taken from
// the provider.
func WithParameters(provider Provider, source ParameterSource) Provider {
	return &overlay{Provider: provider, source: source}
}

func (o *overlay) ProtocolParameters(ctx context.Context, epoch int) (*rewards.ProtocolParameters, error) {
	return o.source.ProtocolParameters(ctx, epoch)
}

func (o *overlay) EpochInfo(ctx context.Context, epoch int) (*rewards.EpochInfo, error) {
	info, err := o.source.EpochInfo(ctx, epoch)
	if err != nil {
		return nil, err
	}
	if info.ActiveStake == nil {
		base, err := o.Provider.EpochInfo(ctx, epoch)
		if err != nil {
			return nil, err
		}
		merged := *info
		merged.ActiveStake = base.ActiveStake
		info = &merged
	}
	return info, nil
}
