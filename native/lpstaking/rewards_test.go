package lpstaking

import (
	"math/big"
	"testing"
)

func TestAccrueAdvancesAccumulator(t *testing.T) {
	state := (&PoolState{
		TotalStaked:    big.NewInt(100_000_000_000),
		LastRewardTime: 1_000,
	}).normalize()
	rate := big.NewInt(462_962_963)

	moved := accrue(state, rate, 2_000)
	if !moved {
		t.Fatalf("expected accumulator to move")
	}
	// 1000s x rate x 1e18 / totalStaked
	want := new(big.Int).Mul(big.NewInt(1_000), rate)
	want.Mul(want, Precision())
	want.Quo(want, big.NewInt(100_000_000_000))
	if state.AccRewardPerShare.Cmp(want) != 0 {
		t.Fatalf("accumulator mismatch: got %s want %s", state.AccRewardPerShare, want)
	}
	if state.LastRewardTime != 2_000 {
		t.Fatalf("last reward time not advanced: %d", state.LastRewardTime)
	}
}

func TestAccrueIdleStakeOwesNothing(t *testing.T) {
	state := (&PoolState{LastRewardTime: 1_000}).normalize()
	rate := big.NewInt(1_000_000)

	// Zero stake: time passes but the accumulator must stay put, and the
	// window must be consumed so stake arriving later earns nothing
	// retroactively.
	if moved := accrue(state, rate, 5_000); moved {
		t.Fatalf("accumulator moved with zero stake")
	}
	if state.AccRewardPerShare.Sign() != 0 {
		t.Fatalf("accumulator accrued with zero stake: %s", state.AccRewardPerShare)
	}
	if state.LastRewardTime != 5_000 {
		t.Fatalf("idle window not consumed: %d", state.LastRewardTime)
	}

	// Zero rate behaves the same way.
	state.TotalStaked = big.NewInt(1_000)
	if moved := accrue(state, big.NewInt(0), 6_000); moved {
		t.Fatalf("accumulator moved with zero rate")
	}
	if state.LastRewardTime != 6_000 {
		t.Fatalf("zero-rate window not consumed: %d", state.LastRewardTime)
	}
}

func TestAccrueClockNotAdvanced(t *testing.T) {
	state := (&PoolState{
		AccRewardPerShare: big.NewInt(12345),
		TotalStaked:       big.NewInt(500),
		LastRewardTime:    2_000,
	}).normalize()
	if moved := accrue(state, big.NewInt(10), 2_000); moved {
		t.Fatalf("accumulator moved without elapsed time")
	}
	if state.AccRewardPerShare.Cmp(big.NewInt(12345)) != 0 {
		t.Fatalf("accumulator changed without elapsed time")
	}
}

func TestSimulateDoesNotMutate(t *testing.T) {
	state := (&PoolState{
		TotalStaked:    big.NewInt(1_000),
		LastRewardTime: 0,
	}).normalize()
	rate := big.NewInt(7)

	acc := simulateAccRewardPerShare(state, rate, 100)
	want := new(big.Int).Mul(big.NewInt(100*7), Precision())
	want.Quo(want, big.NewInt(1_000))
	if acc.Cmp(want) != 0 {
		t.Fatalf("simulated accumulator mismatch: got %s want %s", acc, want)
	}
	if state.AccRewardPerShare.Sign() != 0 || state.LastRewardTime != 0 {
		t.Fatalf("simulation mutated pool state")
	}
}

func TestComputeRewardDebtTruncates(t *testing.T) {
	// 3 x (1e18 + 1) / 1e18 = 3 with a remainder that must be discarded.
	acc := new(big.Int).Add(Precision(), big.NewInt(1))
	debt := computeRewardDebt(big.NewInt(3), acc)
	if debt.Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("expected truncation to 3, got %s", debt)
	}
}

func TestPendingAgainstZeroStake(t *testing.T) {
	entry := &StakerEntry{
		StakedAmount:   big.NewInt(0),
		RewardDebt:     big.NewInt(0),
		PendingRewards: big.NewInt(777),
	}
	pending := pendingAgainst(entry, new(big.Int).Mul(Precision(), big.NewInt(50)))
	if pending.Cmp(big.NewInt(777)) != 0 {
		t.Fatalf("zero-stake entry must owe exactly its banked pending, got %s", pending)
	}
}

func TestPendingForSelectsSnapshot(t *testing.T) {
	state := (&PoolState{
		AccRewardPerShare:     new(big.Int).Mul(Precision(), big.NewInt(10)),
		PrevAccRewardPerShare: new(big.Int).Mul(Precision(), big.NewInt(4)),
	}).normalize()
	entry := &StakerEntry{
		StakedAmount:   big.NewInt(100),
		RewardDebt:     big.NewInt(100),
		PendingRewards: big.NewInt(5),
	}
	live := pendingFor(state, entry, true)
	if live.Cmp(big.NewInt(100*10-100+5)) != 0 {
		t.Fatalf("live pending mismatch: %s", live)
	}
	frozen := pendingFor(state, entry, false)
	if frozen.Cmp(big.NewInt(100*4-100+5)) != 0 {
		t.Fatalf("frozen pending mismatch: %s", frozen)
	}
}
