package rewards

import (
	"fmt"
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/shopspring/decimal"
)

// TreasuryInputs are the facts the treasury computation of one boundary
// depends on.
type TreasuryInputs struct {
	Epoch            int
	PreviousReserves *big.Int
	PreviousTreasury *big.Int
	Parameters       *ProtocolParameters
	Info             *EpochInfo
	RetiredPools     []RetiredPool
	MirCertificates  []MirCertificate
	Facts            *RegistrationFacts
}

// TreasuryResult is the outcome of the treasury computation.
type TreasuryResult struct {
	// Treasury is the new treasury before unspendable rewards are added.
	Treasury            *big.Int
	RewardPot           *big.Int
	TreasuryCut         *big.Int
	StakePoolRewardsPot *big.Int
	UnclaimedRefunds    *big.Int
	TreasuryWithdrawals *big.Int
	ReservesWithdrawals *big.Int
	Eta                 decimal.Decimal
	BlockCount          int
}

// SelectBlockCount returns the number of blocks that counts for eta.
func SelectBlockCount(policy *era.Policy, decentralisation decimal.Decimal, info *EpochInfo) int {
	if policy.BlockCountSource(decentralisation) == era.AllBlocks {
		return info.BlockCount
	}
	return info.NonOBFTBlockCount
}

// CalculateEta returns the ratio of produced to expected blocks, capped at
// one. It is one while the network is (nearly) fully federated.
func CalculateEta(blocks int, decentralisation, expectedSlotsPerEpoch, activeSlotCoefficient decimal.Decimal) decimal.Decimal {
	if era.IsFullyFederated(decentralisation) {
		return numeric.One
	}
	expected := numeric.One.Sub(decentralisation).Mul(expectedSlotsPerEpoch).Mul(activeSlotCoefficient)
	if !expected.IsPositive() {
		return numeric.One
	}
	return numeric.Min(numeric.One, numeric.Divide(numeric.FromInt(int64(blocks)), expected))
}

// CalculateRewardPot returns floor(reserves * rho * eta) + fees.
func CalculateRewardPot(reserves *big.Int, monetaryExpandRate, eta decimal.Decimal, fees *big.Int) *big.Int {
	expansion := numeric.MultiplyAndFloor(numeric.FromLovelace(reserves), monetaryExpandRate, eta)
	return numeric.Add(expansion, fees)
}

// CalculateTreasuryCut returns floor(rewardPot * tau).
func CalculateTreasuryCut(rewardPot *big.Int, treasuryGrowthRate decimal.Decimal) *big.Int {
	return numeric.MultiplyAndFloor(numeric.FromLovelace(rewardPot), treasuryGrowthRate)
}

// RefundClaimable reports whether the deposit of a retiring pool can be
// returned to its reward address, i.e. the address was registered at some
// point and isn't deregistered at the epoch boundary.
func RefundClaimable(facts *RegistrationFacts, rewardAddress string) bool {
	if facts == nil {
		return false
	}
	return has(facts.AccountsRegisteredInThePast, rewardAddress) &&
		!has(facts.DeregisteredAccountsOnEpochBoundary, rewardAddress)
}

// PoolDepositOf returns the deposit of a retiring pool, falling back to the
// protocol parameter and then to the network default.
func PoolDepositOf(pool RetiredPool, params *ProtocolParameters, network *era.Network) *big.Int {
	switch {
	case pool.DepositAmount != nil:
		return pool.DepositAmount
	case params != nil && params.PoolDeposit != nil:
		return params.PoolDeposit
	}
	return network.PoolDeposit
}

// ComputeTreasury computes the reward pot, the treasury cut and the
// treasury adjustments of one boundary. The new treasury is
//
//	treasury' = treasury + cut + unclaimed refunds - MIR(treasury)
//
// MIR certificates drawing on the treasury are withdrawn from it. Those
// drawing on the reserves are only summed up in ReservesWithdrawals and
// are subtracted from the reserves by the caller.
func ComputeTreasury(policy *era.Policy, in TreasuryInputs) (*TreasuryResult, error) {
	if err := ValidateParameters(in.Parameters); err != nil {
		return nil, err
	}
	if err := validateInfo(in.Info); err != nil {
		return nil, err
	}
	if isNegative(in.PreviousReserves) || isNegative(in.PreviousTreasury) {
		return nil, invalid("epoch %d: negative previous pot", in.Epoch)
	}
	network := policy.Network()
	params := in.Parameters

	blocks := SelectBlockCount(policy, params.Decentralisation, in.Info)
	eta := CalculateEta(blocks, params.Decentralisation,
		decimal.NewFromInt(int64(network.ExpectedSlotsPerEpoch)), network.ActiveSlotCoefficient)

	rewardPot := CalculateRewardPot(in.PreviousReserves, params.MonetaryExpandRate, eta, in.Info.Fees)
	treasuryCut := CalculateTreasuryCut(rewardPot, params.TreasuryGrowthRate)

	unclaimed := new(big.Int)
	for _, pool := range in.RetiredPools {
		if !RefundClaimable(in.Facts, pool.RewardAddress) {
			unclaimed.Add(unclaimed, PoolDepositOf(pool, params, network))
		}
	}

	treasuryWithdrawals := new(big.Int)
	reservesWithdrawals := new(big.Int)
	for _, mir := range in.MirCertificates {
		if isNegative(mir.TotalRewards) {
			return nil, invalid("epoch %d: negative MIR amount %s", in.Epoch, mir.TotalRewards)
		}
		switch mir.Pot {
		case MirPotTreasury:
			treasuryWithdrawals.Add(treasuryWithdrawals, mir.TotalRewards)
		case MirPotReserves:
			reservesWithdrawals.Add(reservesWithdrawals, mir.TotalRewards)
		default:
			return nil, invalid("epoch %d: unknown MIR pot %d", in.Epoch, mir.Pot)
		}
	}

	treasury := numeric.Sum(in.PreviousTreasury, treasuryCut, unclaimed)
	treasury.Sub(treasury, treasuryWithdrawals)
	if treasury.Sign() < 0 {
		return nil, fmt.Errorf("%w: epoch %d: treasury withdrawals of %s exceed the treasury",
			ErrInvalidParameter, in.Epoch, treasuryWithdrawals)
	}

	return &TreasuryResult{
		Treasury:            treasury,
		RewardPot:           rewardPot,
		TreasuryCut:         treasuryCut,
		StakePoolRewardsPot: numeric.Sub(rewardPot, treasuryCut),
		UnclaimedRefunds:    unclaimed,
		TreasuryWithdrawals: treasuryWithdrawals,
		ReservesWithdrawals: reservesWithdrawals,
		Eta:                 eta,
		BlockCount:          blocks,
	}, nil
}
