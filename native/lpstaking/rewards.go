package lpstaking

import "math/big"

// precision is the fixed-point scale of the reward-per-share accumulator.
const precisionDecimals = 18

var precision = new(big.Int).Exp(big.NewInt(10), big.NewInt(precisionDecimals), nil)

// Precision returns the accumulator scaling factor (10^18).
func Precision() *big.Int {
	return new(big.Int).Set(precision)
}

// accrue advances the pool's accumulator to now at the supplied rate. The
// last reward time always moves to now, even when no reward is minted, so
// idle periods with zero stake or zero rate never retroactively accrue once
// stake reappears. Mutates state in place and reports whether the accumulator
// itself moved.
func accrue(state *PoolState, rate *big.Int, now uint64) bool {
	state.normalize()
	moved := false
	if now > state.LastRewardTime && state.TotalStaked.Sign() > 0 && rate != nil && rate.Sign() > 0 {
		elapsed := new(big.Int).SetUint64(now - state.LastRewardTime)
		minted := new(big.Int).Mul(elapsed, rate)
		minted.Mul(minted, precision)
		minted.Quo(minted, state.TotalStaked)
		if minted.Sign() > 0 {
			state.AccRewardPerShare.Add(state.AccRewardPerShare, minted)
			moved = true
		}
	}
	state.LastRewardTime = now
	return moved
}

// simulateAccRewardPerShare returns the accumulator value the pool would hold
// if advanced to now, without mutating anything. Used by read-only queries.
func simulateAccRewardPerShare(state *PoolState, rate *big.Int, now uint64) *big.Int {
	acc := cloneBig(state.AccRewardPerShare)
	if now > state.LastRewardTime && state.TotalStaked != nil && state.TotalStaked.Sign() > 0 && rate != nil && rate.Sign() > 0 {
		elapsed := new(big.Int).SetUint64(now - state.LastRewardTime)
		minted := new(big.Int).Mul(elapsed, rate)
		minted.Mul(minted, precision)
		minted.Quo(minted, state.TotalStaked)
		acc.Add(acc, minted)
	}
	return acc
}

// computeRewardDebt prices a balance against the accumulator:
// amount x acc / precision, truncated. The truncation loss (< 1 smoothed
// unit per operation) accumulates in the module's favour, never the staker's.
func computeRewardDebt(amount, acc *big.Int) *big.Int {
	if amount == nil || acc == nil {
		return big.NewInt(0)
	}
	debt := new(big.Int).Mul(amount, acc)
	return debt.Quo(debt, precision)
}

// pendingAgainst computes an entry's total owed reward against the supplied
// accumulator snapshot: staked x acc / precision - rewardDebt + banked. The
// same shape serves both the live accumulator and the frozen previous-epoch
// snapshot; staleness only selects which one applies. A zero-stake entry owes
// exactly its banked pending.
func pendingAgainst(entry *StakerEntry, acc *big.Int) *big.Int {
	if entry == nil {
		return big.NewInt(0)
	}
	banked := cloneBig(entry.PendingRewards)
	if entry.StakedAmount == nil || entry.StakedAmount.Sign() == 0 {
		return banked
	}
	accumulated := new(big.Int).Mul(entry.StakedAmount, acc)
	accumulated.Quo(accumulated, precision)
	accumulated.Sub(accumulated, cloneBig(entry.RewardDebt))
	return banked.Add(banked, accumulated)
}

// pendingFor selects the accumulator snapshot by staleness: entries proved
// under the current epoch price against the live accumulator, everything
// else against the value frozen at the last rotation.
func pendingFor(state *PoolState, entry *StakerEntry, currentEpoch bool) *big.Int {
	if currentEpoch {
		return pendingAgainst(entry, state.AccRewardPerShare)
	}
	return pendingAgainst(entry, state.PrevAccRewardPerShare)
}
