package rewards

import (
	"sort"

	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
)

// AccountEventKind distinguishes stake address certificates.
type AccountEventKind int

const (
	AccountRegistration AccountEventKind = iota
	AccountDeregistration
)

// AccountEvent is a stake address (de)registration on chain.
type AccountEvent struct {
	StakeAddress string
	Kind         AccountEventKind
	Slot         uint64
	TxIndex      int
	CertIndex    int
}

func (e AccountEvent) before(o AccountEvent) bool {
	if e.Slot != o.Slot {
		return e.Slot < o.Slot
	}
	if e.TxIndex != o.TxIndex {
		return e.TxIndex < o.TxIndex
	}
	return e.CertIndex < o.CertIndex
}

// BuildRegistrationFacts derives the registration sets for the boundary of
// epoch from the complete event history of the accounts of interest. Events
// before the cutoff slot, the end of the stabilization window in epoch-1,
// are stable; events between the cutoff and the boundary are late.
// suppressed is passed through unchanged.
func BuildRegistrationFacts(policy *era.Policy, epoch int, events []AccountEvent, suppressed map[string]struct{}) *RegistrationFacts {
	cutoff := policy.RegistrationCutoffSlot(epoch)
	boundary := policy.FirstSlotOfEpoch(epoch)

	sorted := make([]AccountEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].before(sorted[j]) })

	type status struct {
		everRegistered       bool
		registeredBefore     bool
		registeredAtCutoff   bool
		registeredAtBoundary bool
	}
	accounts := map[string]*status{}
	for _, e := range sorted {
		if e.Slot >= boundary {
			continue
		}
		s, found := accounts[e.StakeAddress]
		if !found {
			s = &status{}
			accounts[e.StakeAddress] = s
		}
		registered := e.Kind == AccountRegistration
		if registered {
			s.everRegistered = true
		}
		if e.Slot < cutoff {
			s.registeredAtCutoff = registered
			s.registeredBefore = s.registeredBefore || registered
		}
		s.registeredAtBoundary = registered
	}

	facts := &RegistrationFacts{
		DeregisteredAccounts:                map[string]struct{}{},
		LateDeregisteredAccounts:            map[string]struct{}{},
		AccountsRegisteredInThePast:         map[string]struct{}{},
		RegisteredAccountsUntilNow:          map[string]struct{}{},
		DeregisteredAccountsOnEpochBoundary: map[string]struct{}{},
		SuppressedLeaderRewards:             suppressed,
	}
	if facts.SuppressedLeaderRewards == nil {
		facts.SuppressedLeaderRewards = map[string]struct{}{}
	}
	for address, s := range accounts {
		if !s.everRegistered {
			continue
		}
		facts.AccountsRegisteredInThePast[address] = struct{}{}
		switch {
		case s.registeredAtCutoff:
			facts.RegisteredAccountsUntilNow[address] = struct{}{}
			if !s.registeredAtBoundary {
				facts.LateDeregisteredAccounts[address] = struct{}{}
			}
		case s.registeredBefore:
			facts.DeregisteredAccounts[address] = struct{}{}
		}
		if !s.registeredAtBoundary {
			facts.DeregisteredAccountsOnEpochBoundary[address] = struct{}{}
		}
	}
	return facts
}
