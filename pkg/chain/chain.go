package chain

//go:generate mockgen -source chain.go -destination chain_mocks.go -package chain

import (
	"context"
	"errors"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"math/big"
)

// ErrEpochNotFound is returned by sources that have no data for the
// requested epoch.
var ErrEpochNotFound = errors.New("no data for the epoch")

// Tip is the latest block of the chain.
type Tip struct {
	// Height is the height number of this block.
	Height uint
	// Hash is the unique hash of this block.
	Hash string
	// Epoch is the epoch in which this block has been minted.
	Epoch uint
	// SlotInEpoch is the slot in the epoch in which the
	// block has been minted.
	SlotInEpoch uint
	// Slot is the slot in which the block has been minted, but the slot number
	// is counted from the inception of the chain.
	Slot uint
	// Timestamp is the Unix timestamp in seconds of the time at which this
	// block has been minted.
	Timestamp uint
}

// ObservedPoolReward is the reward of a pool as recorded by the chain.
type ObservedPoolReward struct {
	PoolID string
	// Epoch is the epoch whose boundary paid the reward.
	Epoch int
	// Rewards is the total reward of the pool, i.e. the pool reward.
	Rewards *big.Int
	// Fees is the part of the rewards taken by the operator.
	Fees *big.Int
}

// ParameterSource provides the protocol parameters and the epoch facts.
type ParameterSource interface {

	// ProtocolParameters returns the protocol parameters in force during
	// the given epoch.
	ProtocolParameters(ctx context.Context, epoch int) (*rewards.ProtocolParameters, error)

	// EpochInfo returns the fees, block counts and the active stake of the
	// given epoch.
	EpochInfo(ctx context.Context, epoch int) (*rewards.EpochInfo, error)
}

// PoolSource provides the stake pools.
type PoolSource interface {

	// PoolStates returns the stake snapshot and produced blocks of all pools
	// in the given epoch keyed by pool id.
	PoolStates(ctx context.Context, epoch int) (map[string]*rewards.PoolState, error)

	// PoolCertificates returns the certificates, issued before the boundary
	// of the given epoch, of all pools with a retirement certificate
	// targeting this boundary.
	PoolCertificates(ctx context.Context, epoch int) ([]rewards.PoolCertificate, error)

	// PoolRegistrations returns the pool deposits paid during the given
	// epoch.
	PoolRegistrations(ctx context.Context, epoch int) ([]rewards.PoolRegistration, error)

	// BlockProducers returns the ids of all pools that minted a block in the
	// given epoch, including pools missing in the stake snapshot.
	BlockProducers(ctx context.Context, epoch int) ([]string, error)
}

// AccountSource provides the stake address history.
type AccountSource interface {

	// AccountEvents returns the registration and deregistration events of
	// the given stake addresses issued before the boundary of the given
	// epoch.
	AccountEvents(ctx context.Context, epoch int, addresses []string) ([]rewards.AccountEvent, error)

	// MirCertificates returns the move instantaneous rewards certificates
	// issued during the given epoch.
	MirCertificates(ctx context.Context, epoch int) ([]rewards.MirCertificate, error)

	// SuppressedLeaderRewards returns the ids of the pools whose leader
	// reward wasn't paid at the boundary of the given epoch, because their
	// reward address is shared with another pool.
	SuppressedLeaderRewards(ctx context.Context, epoch int) ([]string, error)
}

// PotSource provides the pots recorded by the chain.
type PotSource interface {

	// AdaPots returns the pots at the boundary of the given epoch.
	AdaPots(ctx context.Context, epoch int) (*rewards.AdaPots, error)
}

// Provider provides all the inputs needed to compute an epoch boundary.
type Provider interface {

	// Name returns the name of this provider.
	Name() string

	ParameterSource
	PoolSource
	AccountSource
	PotSource
}

// TipSource is an interface for querying the tip of the chain.
type TipSource interface {

	// LatestTip queries for the latest minted block.
	//
	// If querying the chain failed, an error will be returned instead.
	LatestTip(ctx context.Context) (*Tip, error)
}

// ObservationSource provides the rewards recorded by the chain.
type ObservationSource interface {

	// ObservedPoolReward returns the reward of the pool with the given id
	// paid at the boundary of the given epoch. ErrEpochNotFound is returned,
	// if no reward has been recorded.
	ObservedPoolReward(ctx context.Context, epoch int, poolID string) (*ObservedPoolReward, error)
}
