package lpstaking

import "math/big"

// PoolState holds the accrual accounting for one registered liquidity pool.
type PoolState struct {
	// AccRewardPerShare is the cumulative reward earned per unit of staked
	// balance since genesis, scaled by Precision. It only moves through the
	// accrual formula and never decreases.
	AccRewardPerShare *big.Int
	// PrevAccRewardPerShare is the accumulator snapshot taken at the most
	// recent epoch rotation. Stale entries are priced against it.
	PrevAccRewardPerShare *big.Int
	// TotalStaked sums the admitted balances counted in the current epoch.
	TotalStaked *big.Int
	// LastRewardTime is the unix timestamp through which the accumulator has
	// been advanced.
	LastRewardTime uint64
}

// Copy returns a deep copy so callers cannot mutate shared pointers.
func (p *PoolState) Copy() *PoolState {
	if p == nil {
		return nil
	}
	return &PoolState{
		AccRewardPerShare:     cloneBig(p.AccRewardPerShare),
		PrevAccRewardPerShare: cloneBig(p.PrevAccRewardPerShare),
		TotalStaked:           cloneBig(p.TotalStaked),
		LastRewardTime:        p.LastRewardTime,
	}
}

func (p *PoolState) normalize() *PoolState {
	if p.AccRewardPerShare == nil {
		p.AccRewardPerShare = big.NewInt(0)
	}
	if p.PrevAccRewardPerShare == nil {
		p.PrevAccRewardPerShare = big.NewInt(0)
	}
	if p.TotalStaked == nil {
		p.TotalStaked = big.NewInt(0)
	}
	return p
}

// EpochRoot is the active snapshot commitment for a pool. Posting a new root
// always rotates the epoch; there is at most one active root per pool.
type EpochRoot struct {
	Root    [32]byte
	EpochID uint64
	// SnapshotHeight records the off-chain block height the snapshot was
	// taken at. Informational only.
	SnapshotHeight uint64
	// PostedAt is the unix timestamp of the posting call. Informational only.
	PostedAt uint64
}

// Copy returns a value copy of the root record.
func (r *EpochRoot) Copy() *EpochRoot {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

// StakerEntry is the per-account ledger record for one pool.
type StakerEntry struct {
	// StakedAmount is the admitted balance counted toward the pool total, or
	// zero once the account has exited the current epoch's accounting while
	// still holding unclaimed reward.
	StakedAmount *big.Int
	// RewardDebt is StakedAmount x AccRewardPerShare / Precision at the last
	// balance-setting event.
	RewardDebt *big.Int
	// PendingRewards is banked reward owed but not yet paid out.
	PendingRewards *big.Int
	// EpochID is the epoch under which StakedAmount and RewardDebt are valid.
	EpochID uint64
}

// Copy returns a deep copy of the entry.
func (s *StakerEntry) Copy() *StakerEntry {
	if s == nil {
		return nil
	}
	return &StakerEntry{
		StakedAmount:   cloneBig(s.StakedAmount),
		RewardDebt:     cloneBig(s.RewardDebt),
		PendingRewards: cloneBig(s.PendingRewards),
		EpochID:        s.EpochID,
	}
}

func (s *StakerEntry) normalize() *StakerEntry {
	if s.StakedAmount == nil {
		s.StakedAmount = big.NewInt(0)
	}
	if s.RewardDebt == nil {
		s.RewardDebt = big.NewInt(0)
	}
	if s.PendingRewards == nil {
		s.PendingRewards = big.NewInt(0)
	}
	return s
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
