package blockfrost

import (
	"context"
	"errors"
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockfrost/blockfrost-go"
	"github.com/shopspring/decimal"
	"math/big"
	"os"
)

// ErrFederatedEpoch is returned for the facts of an epoch with a
// decentralisation parameter above zero. Blockfrost doesn't tell the blocks
// of the federated nodes from those of the stake pools.
var ErrFederatedEpoch = errors.New("blockfrost can't split the blocks of a federated epoch")

// Backend is an implementation of chain.ParameterSource, chain.TipSource
// and chain.ObservationSource that makes use of the Blockfrost API.
type Backend struct {
	client  blockfrost.APIClient
	history *historyCache
}

// NewBlockFrostBackend is creating a new Backend that uses Blockfrost API
// with the api key specified in the environment.
func NewBlockFrostBackend() (*Backend, error) {
	apiKey := os.Getenv("BLU_BLOCKFROST_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API key for blockfrost hasn't been specified in the environment (BLU_BLOCKFROST_API_KEY)")
	}
	client := blockfrost.NewAPIClient(blockfrost.APIClientOptions{
		ProjectID: apiKey,
	})
	return newBackend(client)
}

func newBackend(client blockfrost.APIClient) (*Backend, error) {
	history, err := newHistoryCache(64)
	if err != nil {
		return nil, err
	}
	return &Backend{
		client:  client,
		history: history,
	}, nil
}

func (b *Backend) Name() string {
	return "blockfrost"
}

// isNotFound checks whether the given error is a Blockfrost response
// stating that the requested resource doesn't exist.
func isNotFound(err error) bool {
	var serr *blockfrost.APIError
	if errors.As(err, &serr) {
		_, ok := serr.Response.(blockfrost.NotFound)
		return ok
	}
	return false
}

// wrap maps Blockfrost not found responses to chain.ErrEpochNotFound.
func wrap(err error, what string, epoch int) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: blockfrost has no %s for epoch %d", chain.ErrEpochNotFound, what, epoch)
	}
	return fmt.Errorf("querying the %s of epoch %d failed: %w", what, epoch, err)
}

// parseLovelace parses an amount of lovelace as returned by Blockfrost.
func parseLovelace(field, value string) (*big.Int, error) {
	if value == "" {
		return new(big.Int), nil
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("blockfrost returned an invalid amount '%s' for %s", value, field)
	}
	return amount, nil
}

func (b *Backend) LatestTip(ctx context.Context) (*chain.Tip, error) {
	block, err := b.client.BlockLatest(ctx)
	if err != nil {
		return nil, err
	}
	return &chain.Tip{
		Height:      uint(block.Height),
		Hash:        block.Hash,
		Epoch:       uint(block.Epoch),
		SlotInEpoch: uint(block.EpochSlot),
		Slot:        uint(block.Slot),
		Timestamp:   uint(block.Time),
	}, nil
}

func (b *Backend) ProtocolParameters(ctx context.Context, epoch int) (*rewards.ProtocolParameters, error) {
	params, err := b.client.EpochParameters(ctx, epoch)
	if err != nil {
		return nil, wrap(err, "parameters", epoch)
	}
	return toProtocolParameters(epoch, params)
}

func toProtocolParameters(epoch int, params blockfrost.EpochParameters) (*rewards.ProtocolParameters, error) {
	deposit, err := parseLovelace("pool_deposit", params.PoolDeposit)
	if err != nil {
		return nil, err
	}
	return &rewards.ProtocolParameters{
		Epoch:                epoch,
		TreasuryGrowthRate:   decimal.NewFromFloat32(params.Tau),
		MonetaryExpandRate:   decimal.NewFromFloat32(params.Rho),
		Decentralisation:     decimal.NewFromFloat32(params.DecentralisationParam),
		OptimalPoolCount:     params.NOpt,
		PoolOwnerInfluence:   decimal.NewFromFloat32(params.A0),
		PoolDeposit:          deposit,
		ProtocolMajorVersion: params.ProtocolMajorVer,
	}, nil
}

// EpochInfo returns the fees and block count of the given epoch. Blockfrost
// doesn't split the blocks by producer, hence all blocks are counted as
// produced by stake pools. ErrFederatedEpoch is returned for epochs with
// d>0, where this doesn't hold. The active stake is left empty.
func (b *Backend) EpochInfo(ctx context.Context, epoch int) (*rewards.EpochInfo, error) {
	params, err := b.client.EpochParameters(ctx, epoch)
	if err != nil {
		return nil, wrap(err, "parameters", epoch)
	}
	if params.DecentralisationParam != 0 {
		return nil, fmt.Errorf("%w: epoch %d has d=%s", ErrFederatedEpoch, epoch,
			decimal.NewFromFloat32(params.DecentralisationParam))
	}
	e, err := b.client.Epoch(ctx, epoch)
	if err != nil {
		return nil, wrap(err, "facts", epoch)
	}
	return toEpochInfo(epoch, e)
}

func toEpochInfo(epoch int, e blockfrost.Epoch) (*rewards.EpochInfo, error) {
	fees, err := parseLovelace("fees", e.Fees)
	if err != nil {
		return nil, err
	}
	return &rewards.EpochInfo{
		Epoch:             epoch,
		Fees:              fees,
		BlockCount:        e.BlockCount,
		NonOBFTBlockCount: e.BlockCount,
	}, nil
}

// ObservedPoolReward returns the reward of the pool paid at the boundary of
// the given epoch. Blockfrost records rewards by the epoch of the stake
// snapshot, which is two epochs before the paying boundary.
func (b *Backend) ObservedPoolReward(ctx context.Context, epoch int, poolID string) (*chain.ObservedPoolReward, error) {
	for attempt := 0; attempt < 2; attempt++ {
		history, err := b.history.fetch(ctx, poolID, b.fetchPoolHistory)
		if err != nil {
			return nil, err
		}
		for _, h := range history {
			if h.Epoch == epoch-2 {
				return toObserved(epoch, poolID, h)
			}
		}
		// The cached history might predate the epoch.
		b.history.forget(poolID)
	}
	return nil, fmt.Errorf("%w: blockfrost has no reward of pool '%s' paid in epoch %d", chain.ErrEpochNotFound,
		poolID, epoch)
}

func toObserved(epoch int, poolID string, h blockfrost.PoolHistory) (*chain.ObservedPoolReward, error) {
	rewardAmount, err := parseLovelace("rewards", h.Rewards)
	if err != nil {
		return nil, err
	}
	fees, err := parseLovelace("fees", h.Fees)
	if err != nil {
		return nil, err
	}
	return &chain.ObservedPoolReward{
		PoolID:  poolID,
		Epoch:   epoch,
		Rewards: rewardAmount,
		Fees:    fees,
	}, nil
}

// fetchPoolHistory queries all pages of the history of the given pool.
func (b *Backend) fetchPoolHistory(ctx context.Context, poolID string) ([]blockfrost.PoolHistory, error) {
	const pageSize = 100
	var history []blockfrost.PoolHistory
	for page := 1; ; page++ {
		entries, err := b.client.PoolHistory(ctx, poolID, blockfrost.APIQueryParams{
			Count: pageSize,
			Page:  page,
		})
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("%w: blockfrost doesn't know pool '%s'", chain.ErrEpochNotFound, poolID)
			}
			return nil, fmt.Errorf("querying the history of pool '%s' failed: %w", poolID, err)
		}
		history = append(history, entries...)
		if len(entries) < pageSize {
			return history, nil
		}
	}
}
