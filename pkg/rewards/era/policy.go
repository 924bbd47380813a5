// Package era encodes the hard-fork dependent behaviour of the reward
// calculation for a Cardano network.
//
// Switches are evaluated for the epoch e whose boundary is being computed.
// The reward update applied at that boundary was calculated during epoch
// e-1 from the blocks of epoch e-2, so a rule that changed with a hard fork
// at epoch h applies to boundaries e with e-1 >= h.
package era

import (
	"github.com/shopspring/decimal"
)

// Phase is the state of the epoch orchestrator for an epoch.
type Phase int

const (
	// PreEraStart epochs have no Shelley pots at all.
	PreEraStart Phase = iota
	// EraStart is the first Shelley epoch, whose pots are the genesis constants.
	EraStart
	// SteadyState epochs run the full pot transition.
	SteadyState
)

func (p Phase) String() string {
	switch p {
	case PreEraStart:
		return "PRE_ERA_START"
	case EraStart:
		return "ERA_START"
	case SteadyState:
		return "STEADY_STATE"
	}
	return "UNKNOWN"
}

// BlockCountSource names the field of the epoch facts that counts the blocks
// relevant for eta.
type BlockCountSource int

const (
	// AllBlocks uses every block of the epoch.
	AllBlocks BlockCountSource = iota
	// NonOBFTBlocks uses the blocks produced by stake pools only.
	NonOBFTBlocks
)

// decentralisationThreshold is the d value from which eta is fixed to one
// and every block counts.
var decentralisationThreshold = decimal.RequireFromString("0.8")

// Policy answers era questions for one network.
type Policy struct {
	network *Network
}

// NewPolicy creates the policy of the given network.
func NewPolicy(network *Network) *Policy {
	return &Policy{network: network}
}

// Network returns the constants the policy is based on.
func (p *Policy) Network() *Network {
	return p.network
}

// Phase classifies the epoch for the orchestrator.
func (p *Policy) Phase(epoch int) Phase {
	switch {
	case epoch < p.network.ShelleyStartEpoch:
		return PreEraStart
	case epoch == p.network.ShelleyStartEpoch:
		return EraStart
	}
	return SteadyState
}

// IsFullyFederated reports whether d is high enough for eta and apparent
// performance to be fixed to one.
func IsFullyFederated(decentralisation decimal.Decimal) bool {
	return decentralisation.GreaterThanOrEqual(decentralisationThreshold)
}

// BlockCountSource selects which block count feeds eta for the given
// decentralisation parameter.
func (p *Policy) BlockCountSource(decentralisation decimal.Decimal) BlockCountSource {
	if IsFullyFederated(decentralisation) {
		return AllBlocks
	}
	// For 0 < d < 0.8 the OBFT nodes still produce blocks that must not
	// count. For d == 0 both counts are equal.
	return NonOBFTBlocks
}

// calculatedDuring returns the epoch during which the reward update applied
// at the boundary of epoch was calculated.
func calculatedDuring(epoch int) int {
	return epoch - 1
}

// RandomnessStabilisationWindow is 4k/f slots.
func (p *Policy) RandomnessStabilisationWindow() uint64 {
	return p.window(4)
}

// StabilityWindow is 3k/f slots.
func (p *Policy) StabilityWindow() uint64 {
	return p.window(3)
}

func (p *Policy) window(multiplier int64) uint64 {
	if p.network.ActiveSlotCoefficient.IsZero() {
		return 0
	}
	k := decimal.NewFromInt(int64(p.network.SecurityParameter))
	w := decimal.NewFromInt(multiplier).Mul(k).Div(p.network.ActiveSlotCoefficient)
	return uint64(w.Floor().IntPart())
}

// StabilizationWindow is the number of slots after the start of the epoch in
// which the reward update is calculated, up to which registration events
// count for the boundary of epoch. It shrinks at the Vasil hard fork.
func (p *Policy) StabilizationWindow(epoch int) uint64 {
	if calculatedDuring(epoch) >= p.network.VasilHardForkEpoch {
		return p.StabilityWindow()
	}
	return p.RandomnessStabilisationWindow()
}

// ForgoRewardPrefilter reports whether rewards of unregistered accounts are
// computed and only filtered when applied at the boundary, in which case
// they go to the treasury. Before Vasil they were filtered out before the
// calculation and went back to the reserves.
func (p *Policy) ForgoRewardPrefilter(epoch int) bool {
	return calculatedDuring(epoch) >= p.network.VasilHardForkEpoch
}

// EmulateLeaderRewardBug reports whether a pool sharing its reward address
// with other block producing pools may lose its leader reward.
func (p *Policy) EmulateLeaderRewardBug(epoch int) bool {
	return calculatedDuring(epoch) < p.network.AllegraHardForkEpoch
}

// ExcludeRewardAddressFromMembers reports whether the member reward of a
// pool's own reward address is dropped because the leader reward replaced it
// instead of being added to it.
func (p *Policy) ExcludeRewardAddressFromMembers(epoch int) bool {
	return calculatedDuring(epoch) < p.network.AllegraHardForkEpoch
}

// IsBootstrapCorrectionEpoch reports whether the Byron redeem addresses are
// returned to the reserves at the boundary of epoch.
func (p *Policy) IsBootstrapCorrectionEpoch(epoch int) bool {
	return epoch == p.network.AllegraHardForkEpoch
}

// Correction returns the known anomaly correction of a pool's operator
// reward at the boundary of epoch.
func (p *Policy) Correction(epoch int, poolID string) (Adjustment, bool) {
	return p.network.Corrections.Adjustment(epoch, poolID)
}

// MissingRewards returns the rewards that were never paid at the boundary
// of epoch.
func (p *Policy) MissingRewards(epoch int) []MissingReward {
	return p.network.Corrections.Missing(epoch)
}

// FirstSlotOfEpoch returns the absolute slot number starting the epoch.
func (p *Policy) FirstSlotOfEpoch(epoch int) uint64 {
	n := p.network
	if epoch < n.ShelleyStartEpoch {
		if epoch < 0 {
			return 0
		}
		return uint64(epoch) * n.ByronSlotsPerEpoch
	}
	return n.ShelleyStartSlot + uint64(epoch-n.ShelleyStartEpoch)*n.ExpectedSlotsPerEpoch
}

// EpochOfSlot returns the epoch containing the absolute slot.
func (p *Policy) EpochOfSlot(slot uint64) int {
	n := p.network
	if slot < n.ShelleyStartSlot {
		if n.ByronSlotsPerEpoch == 0 {
			return 0
		}
		return int(slot / n.ByronSlotsPerEpoch)
	}
	return n.ShelleyStartEpoch + int((slot-n.ShelleyStartSlot)/n.ExpectedSlotsPerEpoch)
}

// RegistrationCutoffSlot is the last slot (exclusive) whose registration
// events count as stable for the reward update applied at the boundary of
// epoch.
func (p *Policy) RegistrationCutoffSlot(epoch int) uint64 {
	return p.FirstSlotOfEpoch(calculatedDuring(epoch)) + p.StabilizationWindow(epoch)
}

// ExpectedBlocks is the number of blocks expected in an epoch with all slots
// open to stake pools.
func (p *Policy) ExpectedBlocks() decimal.Decimal {
	return decimal.NewFromInt(int64(p.network.ExpectedSlotsPerEpoch)).Mul(p.network.ActiveSlotCoefficient)
}
