package era

import "math/big"

// PoolEpoch keys an adjustment to one pool's result in one epoch.
type PoolEpoch struct {
	Epoch  int
	PoolID string
}

// Adjustment is a signed lovelace correction of a pool's operator reward
// that reproduces a historical node behaviour the general formula can't
// derive.
type Adjustment struct {
	Amount *big.Int
	// Source cites where the anomaly is documented.
	Source string
}

// MissingReward is a reward the formula yields but the chain never paid.
type MissingReward struct {
	StakeAddress string
	PoolID       string
	// Type is "leader" or "member".
	Type   string
	Source string
}

// Corrections is the known anomaly corrections table of a network. It is
// data: entries are added only together with a cited Source.
type Corrections struct {
	Version        string
	PoolAdjustment map[PoolEpoch]Adjustment
	MissingRewards map[int][]MissingReward
}

// MainnetCorrections returns the mainnet table. It holds no cited entries
// yet, so no mainnet pool or stake address is corrected.
func MainnetCorrections() *Corrections {
	return &Corrections{
		Version:        "mainnet-1",
		PoolAdjustment: map[PoolEpoch]Adjustment{},
		MissingRewards: map[int][]MissingReward{},
	}
}

// Adjustment returns the correction for the pool in the epoch, if any.
func (c *Corrections) Adjustment(epoch int, poolID string) (Adjustment, bool) {
	if c == nil {
		return Adjustment{}, false
	}
	a, found := c.PoolAdjustment[PoolEpoch{Epoch: epoch, PoolID: poolID}]
	return a, found
}

// Missing returns the rewards of the epoch that were never paid.
func (c *Corrections) Missing(epoch int) []MissingReward {
	if c == nil {
		return nil
	}
	return c.MissingRewards[epoch]
}
