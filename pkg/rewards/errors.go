package rewards

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidParameter is returned when an input lies outside its valid
	// domain. Nothing is computed in that case.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrArithmeticInconsistency is returned when an internal invariant
	// fails after aggregation. It indicates a defect of the engine.
	ErrArithmeticInconsistency = errors.New("arithmetic inconsistency")
	// ErrMissingInputs is returned when a required input bundle is absent.
	ErrMissingInputs = errors.New("missing inputs")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func inRange(d, lo, hi decimal.Decimal) bool {
	return d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
}

// ValidateParameters checks that all protocol parameters lie in their
// domain.
func ValidateParameters(params *ProtocolParameters) error {
	if params == nil {
		return fmt.Errorf("%w: protocol parameters", ErrMissingInputs)
	}
	if !inRange(params.TreasuryGrowthRate, numeric.Zero, numeric.One) {
		return invalid("treasury growth rate %s outside [0,1]", params.TreasuryGrowthRate)
	}
	if !inRange(params.MonetaryExpandRate, numeric.Zero, numeric.One) {
		return invalid("monetary expand rate %s outside [0,1]", params.MonetaryExpandRate)
	}
	if !inRange(params.Decentralisation, numeric.Zero, numeric.One) {
		return invalid("decentralisation %s outside [0,1]", params.Decentralisation)
	}
	if params.OptimalPoolCount <= 0 {
		return invalid("optimal pool count %d must be positive", params.OptimalPoolCount)
	}
	if params.PoolOwnerInfluence.IsNegative() {
		return invalid("pool owner influence %s is negative", params.PoolOwnerInfluence)
	}
	if isNegative(params.PoolDeposit) {
		return invalid("pool deposit %s is negative", params.PoolDeposit)
	}
	return nil
}

// ValidatePoolState checks the pool facts the reward formula depends on.
func ValidatePoolState(pool *PoolState) error {
	if !inRange(pool.Margin, numeric.Zero, numeric.One) {
		return invalid("pool %s: margin %s outside [0,1]", pool.PoolID, pool.Margin)
	}
	if isNegative(pool.FixedCost) {
		return invalid("pool %s: fixed cost %s is negative", pool.PoolID, pool.FixedCost)
	}
	if isNegative(pool.Pledge) {
		return invalid("pool %s: pledge %s is negative", pool.PoolID, pool.Pledge)
	}
	if isNegative(pool.ActiveStake) || isNegative(pool.OwnerActiveStake) {
		return invalid("pool %s: negative stake", pool.PoolID)
	}
	if pool.BlockCount < 0 {
		return invalid("pool %s: negative block count", pool.PoolID)
	}
	for _, d := range pool.Delegators {
		if isNegative(d.ActiveStake) {
			return invalid("pool %s: delegator %s has negative stake", pool.PoolID, d.StakeAddress)
		}
	}
	return nil
}

func validateInfo(info *EpochInfo) error {
	if info == nil {
		return fmt.Errorf("%w: epoch info", ErrMissingInputs)
	}
	if info.BlockCount < 0 || info.OBFTBlockCount < 0 || info.NonOBFTBlockCount < 0 {
		return invalid("epoch %d: negative block count", info.Epoch)
	}
	if isNegative(info.Fees) || isNegative(info.ActiveStake) {
		return invalid("epoch %d: negative fees or active stake", info.Epoch)
	}
	return nil
}

func validatePots(pots *AdaPots) error {
	if pots == nil {
		return fmt.Errorf("%w: previous pots", ErrMissingInputs)
	}
	if isNegative(pots.Reserves) || isNegative(pots.Treasury) || isNegative(pots.Deposits) {
		return invalid("epoch %d: negative previous pot", pots.Epoch)
	}
	return nil
}

func isNegative(v *big.Int) bool {
	return v != nil && v.Sign() < 0
}
