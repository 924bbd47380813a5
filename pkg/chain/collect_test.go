package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testPoolStates() map[string]*rewards.PoolState {
	return map[string]*rewards.PoolState{
		"pool1test": {
			PoolID:           "pool1test",
			Epoch:            298,
			RewardAddress:    "stake1reward",
			ActiveStake:      big.NewInt(40_000_000_000_000),
			Pledge:           big.NewInt(1_000_000_000_000),
			Margin:           decimal.RequireFromString("0.02"),
			FixedCost:        big.NewInt(340_000_000),
			BlockCount:       30,
			Owners:           rewards.NewSet("stake1owner"),
			OwnerActiveStake: big.NewInt(1_200_000_000_000),
			Delegators: []rewards.Delegator{
				{StakeAddress: "stake1alice", ActiveStake: big.NewInt(20_000_000_000_000)},
			},
		},
	}
}

func TestCollect(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)
	params := &rewards.ProtocolParameters{Epoch: 298}
	info := &rewards.EpochInfo{Epoch: 298}
	pots := &rewards.AdaPots{Epoch: 299}
	mirs := []rewards.MirCertificate{{Pot: rewards.MirPotTreasury, TotalRewards: big.NewInt(5)}}
	registrations := []rewards.PoolRegistration{{PoolID: "pool1new", Deposit: big.NewInt(500_000_000)}}

	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().AdaPots(gomock.Any(), 299).Return(pots, nil)
	provider.EXPECT().ProtocolParameters(gomock.Any(), 298).Return(params, nil)
	provider.EXPECT().EpochInfo(gomock.Any(), 298).Return(info, nil)
	provider.EXPECT().PoolStates(gomock.Any(), 298).Return(testPoolStates(), nil)
	provider.EXPECT().BlockProducers(gomock.Any(), 298).Return([]string{"pool1ghost", "pool1test"}, nil)
	provider.EXPECT().MirCertificates(gomock.Any(), 299).Return(mirs, nil)
	provider.EXPECT().PoolRegistrations(gomock.Any(), 299).Return(registrations, nil)
	provider.EXPECT().PoolCertificates(gomock.Any(), 300).Return([]rewards.PoolCertificate{
		{PoolID: "pool1gone", Kind: rewards.PoolRegistrationCertificate, Slot: 10, RewardAddress: "stake1gone"},
		{PoolID: "pool1gone", Kind: rewards.PoolRetirementCertificate, Slot: 20, RetiringEpoch: 300},
	}, nil)
	provider.EXPECT().SuppressedLeaderRewards(gomock.Any(), 300).Return([]string{"pool1shared"}, nil)
	provider.EXPECT().
		AccountEvents(gomock.Any(), 300, []string{"stake1alice", "stake1gone", "stake1owner", "stake1reward"}).
		Return([]rewards.AccountEvent{
			{StakeAddress: "stake1reward", Kind: rewards.AccountRegistration, Slot: 100},
		}, nil)

	in, err := Collect(ctx, provider, era.NewPolicy(era.Mainnet()), 300, nil)
	require.NoError(t, err)
	assert.Equal(t, 300, in.Epoch)
	assert.Same(t, pots, in.PreviousPots)
	assert.Same(t, params, in.Parameters)
	assert.Same(t, info, in.Info)
	assert.Len(t, in.PoolStates, 1)
	assert.Equal(t, mirs, in.MirCertificates)
	assert.Equal(t, registrations, in.PoolRegistrations)
	require.Len(t, in.RetiredPools, 1)
	assert.Equal(t, "stake1gone", in.RetiredPools[0].RewardAddress)
	assert.Equal(t, rewards.NewSet("stake1reward"), in.Facts.RegisteredAccountsUntilNow)
	assert.Equal(t, rewards.NewSet("pool1shared"), in.Facts.SuppressedLeaderRewards)
	assert.Equal(t, []string{"pool1ghost", "pool1test"}, in.BlockProducers)
}

func TestCollect_BlockProducersError(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().ProtocolParameters(gomock.Any(), 298).Return(&rewards.ProtocolParameters{Epoch: 298}, nil)
	provider.EXPECT().EpochInfo(gomock.Any(), 298).Return(&rewards.EpochInfo{Epoch: 298}, nil)
	provider.EXPECT().PoolStates(gomock.Any(), 298).Return(testPoolStates(), nil)
	provider.EXPECT().BlockProducers(gomock.Any(), 298).Return(nil, ErrEpochNotFound)

	_, err := Collect(context.Background(), provider, era.NewPolicy(era.Mainnet()), 300,
		&rewards.AdaPots{Epoch: 299})
	assert.ErrorIs(t, err, ErrEpochNotFound)
}

func TestCollect_UsesGivenPreviousPots(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().ProtocolParameters(gomock.Any(), 298).Return(nil, ErrEpochNotFound)

	previous := &rewards.AdaPots{Epoch: 299}
	_, err := Collect(context.Background(), provider, era.NewPolicy(era.Mainnet()), 300, previous)
	assert.ErrorIs(t, err, ErrEpochNotFound)
}

func TestCollect_BeforeSteadyState(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)

	for _, epoch := range []int{150, 208} {
		in, err := Collect(context.Background(), provider, era.NewPolicy(era.Mainnet()), epoch, nil)
		require.NoError(t, err)
		assert.Equal(t, &rewards.EpochInputs{Epoch: epoch}, in)
	}
}

func TestWithParameters(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)
	source := NewMockParameterSource(ctrl)

	params := &rewards.ProtocolParameters{Epoch: 298, OptimalPoolCount: 500}
	source.EXPECT().ProtocolParameters(ctx, 298).Return(params, nil)
	source.EXPECT().EpochInfo(ctx, 298).Return(&rewards.EpochInfo{Epoch: 298, BlockCount: 21_000}, nil)
	provider.EXPECT().EpochInfo(ctx, 298).
		Return(&rewards.EpochInfo{Epoch: 298, BlockCount: 1, ActiveStake: big.NewInt(42)}, nil)
	provider.EXPECT().Name().Return("snapshot")

	overlaid := WithParameters(provider, source)
	got, err := overlaid.ProtocolParameters(ctx, 298)
	require.NoError(t, err)
	assert.Same(t, params, got)
	info, err := overlaid.EpochInfo(ctx, 298)
	require.NoError(t, err)
	assert.Equal(t, 21_000, info.BlockCount)
	assert.Equal(t, "42", info.ActiveStake.String())
	assert.Equal(t, "snapshot", overlaid.Name())
}
