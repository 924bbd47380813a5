package rewards

import (
	"math/big"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRetirements(t *testing.T) {
	deposit := big.NewInt(500_000_000)
	certificates := []PoolCertificate{
		// pool1a registers and retires at 300.
		{PoolID: "pool1a", Kind: PoolRegistrationCertificate, Slot: 10, RewardAddress: "stake1a", Deposit: deposit},
		{PoolID: "pool1a", Kind: PoolRetirementCertificate, Slot: 20, RetiringEpoch: 300},
		// pool1b retires at 300, then moves the retirement to 305.
		{PoolID: "pool1b", Kind: PoolRegistrationCertificate, Slot: 11, RewardAddress: "stake1b"},
		{PoolID: "pool1b", Kind: PoolRetirementCertificate, Slot: 21, RetiringEpoch: 300},
		{PoolID: "pool1b", Kind: PoolRetirementCertificate, Slot: 22, RetiringEpoch: 305},
		// pool1c retires at 300 but is updated afterwards.
		{PoolID: "pool1c", Kind: PoolRegistrationCertificate, Slot: 12, RewardAddress: "stake1c"},
		{PoolID: "pool1c", Kind: PoolRetirementCertificate, Slot: 23, RetiringEpoch: 300},
		{PoolID: "pool1c", Kind: PoolRegistrationCertificate, Slot: 24, RewardAddress: "stake1c"},
		// pool1d changes its reward address before retiring. Certificates
		// arrive out of order and share a slot.
		{PoolID: "pool1d", Kind: PoolRetirementCertificate, Slot: 30, TxIndex: 1, RetiringEpoch: 300},
		{PoolID: "pool1d", Kind: PoolRegistrationCertificate, Slot: 30, TxIndex: 0, CertIndex: 1, RewardAddress: "stake1d2"},
		{PoolID: "pool1d", Kind: PoolRegistrationCertificate, Slot: 13, RewardAddress: "stake1d", Deposit: deposit},
		// pool1e retires later.
		{PoolID: "pool1e", Kind: PoolRetirementCertificate, Slot: 25, RetiringEpoch: 301},
	}

	retired := ResolveRetirements(300, certificates)
	require.Len(t, retired, 2)
	assert.Equal(t, RetiredPool{PoolID: "pool1a", RewardAddress: "stake1a", DepositAmount: deposit}, retired[0])
	assert.Equal(t, RetiredPool{PoolID: "pool1d", RewardAddress: "stake1d2", DepositAmount: deposit}, retired[1])

	assert.Empty(t, ResolveRetirements(300, nil))
	later := ResolveRetirements(305, certificates)
	require.Len(t, later, 1)
	assert.Equal(t, "pool1b", later[0].PoolID)
}

func TestComputeDeposits(t *testing.T) {
	facts := &RegistrationFacts{
		AccountsRegisteredInThePast:         NewSet("stake1kept", "stake1gone"),
		DeregisteredAccountsOnEpochBoundary: NewSet("stake1gone"),
	}
	result, err := ComputeDeposits(
		big.NewInt(10_000_000_000),
		[]PoolRegistration{{PoolID: "pool1new", Deposit: big.NewInt(500_000_000)}},
		[]RetiredPool{
			{PoolID: "pool1kept", RewardAddress: "stake1kept"},
			{PoolID: "pool1gone", RewardAddress: "stake1gone", DepositAmount: big.NewInt(400_000_000)},
		},
		facts, testParameters(), era.Mainnet(),
	)
	require.NoError(t, err)
	assert.Equal(t, "500000000", result.RegistrationDeposits.String())
	assert.Equal(t, "500000000", result.Refunds.String())
	assert.Equal(t, "400000000", result.UnclaimedRefunds.String())
	assert.Equal(t, []string{"pool1kept"}, result.RefundedPools)
	assert.Equal(t, []string{"pool1gone"}, result.UnclaimedPools)
	assert.Equal(t, "9600000000", result.Deposits.String())
}

func TestComputeDeposits_FallsBackToNetworkDeposit(t *testing.T) {
	result, err := ComputeDeposits(big.NewInt(1_000_000_000), nil,
		[]RetiredPool{{PoolID: "pool1x", RewardAddress: "stake1x"}}, nil, nil, era.Mainnet())
	require.NoError(t, err)
	assert.Equal(t, "500000000", result.UnclaimedRefunds.String())
	assert.Equal(t, "500000000", result.Deposits.String())
}

func TestComputeDeposits_RejectsNegative(t *testing.T) {
	_, err := ComputeDeposits(big.NewInt(-1), nil, nil, nil, nil, era.Mainnet())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = ComputeDeposits(nil, []PoolRegistration{{PoolID: "p", Deposit: big.NewInt(-5)}}, nil, nil, nil, era.Mainnet())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestComputeDeposits_PotCannotCoverRetirements(t *testing.T) {
	retired := []RetiredPool{
		{PoolID: "pool1a", RewardAddress: "stake1a", DepositAmount: big.NewInt(500_000_000)},
		{PoolID: "pool1b", RewardAddress: "stake1b", DepositAmount: big.NewInt(500_000_000)},
	}
	result, err := ComputeDeposits(big.NewInt(600_000_000), nil, retired, registeredFacts("stake1a"),
		testParameters(), era.Mainnet())
	assert.ErrorIs(t, err, ErrArithmeticInconsistency)
	assert.Nil(t, result)

	result, err = ComputeDeposits(big.NewInt(600_000_000),
		[]PoolRegistration{{PoolID: "pool1new", Deposit: big.NewInt(400_000_000)}}, retired,
		registeredFacts("stake1a"), testParameters(), era.Mainnet())
	require.NoError(t, err)
	assert.Equal(t, "0", result.Deposits.String())
}
