package events

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"lumenstake/core/types"
	"lumenstake/crypto"
)

const (
	TypeLPStakingPoolAdded       = "lpstaking.pool.added"
	TypeLPStakingPoolRemoved     = "lpstaking.pool.removed"
	TypeLPStakingRootPosted      = "lpstaking.root.posted"
	TypeLPStakingStaked          = "lpstaking.staked"
	TypeLPStakingClaimed         = "lpstaking.claimed"
	TypeLPStakingUnstaked        = "lpstaking.unstaked"
	TypeLPStakingStakeOverridden = "lpstaking.stake.overridden"
	TypeLPStakingFunded          = "lpstaking.funded"
	TypeLPStakingWithdrawn       = "lpstaking.withdrawn"
	TypeLPStakingRateUpdated     = "lpstaking.rate.updated"
	TypeLPStakingAdminRotated    = "lpstaking.admin.rotated"
)

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func formatAddr(addr [20]byte) string {
	return crypto.NewAddress(crypto.LumePrefix, addr[:]).String()
}

// LPStakingPoolAdded is emitted when the admin registers a new liquidity pool.
type LPStakingPoolAdded struct {
	PoolID    [32]byte
	PoolIndex uint32
}

func (LPStakingPoolAdded) EventType() string { return TypeLPStakingPoolAdded }

func (e LPStakingPoolAdded) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingPoolAdded,
		Attributes: map[string]string{
			"poolId":    hex.EncodeToString(e.PoolID[:]),
			"poolIndex": strconv.FormatUint(uint64(e.PoolIndex), 10),
		},
	}
}

// LPStakingPoolRemoved is emitted when a pool is deactivated.
type LPStakingPoolRemoved struct {
	PoolIndex uint32
}

func (LPStakingPoolRemoved) EventType() string { return TypeLPStakingPoolRemoved }

func (e LPStakingPoolRemoved) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingPoolRemoved,
		Attributes: map[string]string{
			"poolIndex": strconv.FormatUint(uint64(e.PoolIndex), 10),
		},
	}
}

// LPStakingRootPosted is emitted on every snapshot root rotation.
type LPStakingRootPosted struct {
	PoolIndex      uint32
	EpochID        uint64
	Root           [32]byte
	SnapshotHeight uint64
	PostedAt       uint64
}

func (LPStakingRootPosted) EventType() string { return TypeLPStakingRootPosted }

func (e LPStakingRootPosted) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingRootPosted,
		Attributes: map[string]string{
			"poolIndex":      strconv.FormatUint(uint64(e.PoolIndex), 10),
			"epochId":        strconv.FormatUint(e.EpochID, 10),
			"root":           hex.EncodeToString(e.Root[:]),
			"snapshotHeight": strconv.FormatUint(e.SnapshotHeight, 10),
			"postedAt":       strconv.FormatUint(e.PostedAt, 10),
		},
	}
}

// LPStakingStaked is emitted when a Merkle proof admits a staker.
type LPStakingStaked struct {
	Account   [20]byte
	PoolIndex uint32
	Amount    *big.Int
	EpochID   uint64
}

func (LPStakingStaked) EventType() string { return TypeLPStakingStaked }

func (e LPStakingStaked) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingStaked,
		Attributes: map[string]string{
			"account":   formatAddr(e.Account),
			"poolIndex": strconv.FormatUint(uint64(e.PoolIndex), 10),
			"amount":    formatAmount(e.Amount),
			"epochId":   strconv.FormatUint(e.EpochID, 10),
		},
	}
}

// LPStakingClaimed is emitted after a successful reward payout.
type LPStakingClaimed struct {
	Account   [20]byte
	PoolIndex uint32
	Amount    *big.Int
}

func (LPStakingClaimed) EventType() string { return TypeLPStakingClaimed }

func (e LPStakingClaimed) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingClaimed,
		Attributes: map[string]string{
			"account":   formatAddr(e.Account),
			"poolIndex": strconv.FormatUint(uint64(e.PoolIndex), 10),
			"amount":    formatAmount(e.Amount),
		},
	}
}

// LPStakingUnstaked is emitted when a staker exits the current epoch's
// accounting. Pending carries the banked amount retained for later claiming.
type LPStakingUnstaked struct {
	Account   [20]byte
	PoolIndex uint32
	Amount    *big.Int
	Pending   *big.Int
}

func (LPStakingUnstaked) EventType() string { return TypeLPStakingUnstaked }

func (e LPStakingUnstaked) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingUnstaked,
		Attributes: map[string]string{
			"account":   formatAddr(e.Account),
			"poolIndex": strconv.FormatUint(uint64(e.PoolIndex), 10),
			"amount":    formatAmount(e.Amount),
			"pending":   formatAmount(e.Pending),
		},
	}
}

// LPStakingStakeOverridden is emitted when the admin force-sets a stake.
type LPStakingStakeOverridden struct {
	Account   [20]byte
	PoolIndex uint32
	Amount    *big.Int
	EpochID   uint64
}

func (LPStakingStakeOverridden) EventType() string { return TypeLPStakingStakeOverridden }

func (e LPStakingStakeOverridden) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingStakeOverridden,
		Attributes: map[string]string{
			"account":   formatAddr(e.Account),
			"poolIndex": strconv.FormatUint(uint64(e.PoolIndex), 10),
			"amount":    formatAmount(e.Amount),
			"epochId":   strconv.FormatUint(e.EpochID, 10),
		},
	}
}

// LPStakingFunded is emitted when reward tokens are deposited into the module.
type LPStakingFunded struct {
	Funder [20]byte
	Amount *big.Int
}

func (LPStakingFunded) EventType() string { return TypeLPStakingFunded }

func (e LPStakingFunded) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingFunded,
		Attributes: map[string]string{
			"funder": formatAddr(e.Funder),
			"amount": formatAmount(e.Amount),
		},
	}
}

// LPStakingWithdrawn is emitted when the admin drains reward tokens.
type LPStakingWithdrawn struct {
	Recipient [20]byte
	Amount    *big.Int
}

func (LPStakingWithdrawn) EventType() string { return TypeLPStakingWithdrawn }

func (e LPStakingWithdrawn) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingWithdrawn,
		Attributes: map[string]string{
			"recipient": formatAddr(e.Recipient),
			"amount":    formatAmount(e.Amount),
		},
	}
}

// LPStakingRateUpdated is emitted when the global reward rate changes.
type LPStakingRateUpdated struct {
	Rate *big.Int
}

func (LPStakingRateUpdated) EventType() string { return TypeLPStakingRateUpdated }

func (e LPStakingRateUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingRateUpdated,
		Attributes: map[string]string{
			"rate": formatAmount(e.Rate),
		},
	}
}

// LPStakingAdminRotated is emitted when the admin role is handed over.
type LPStakingAdminRotated struct {
	Previous [20]byte
	Next     [20]byte
}

func (LPStakingAdminRotated) EventType() string { return TypeLPStakingAdminRotated }

func (e LPStakingAdminRotated) Event() *types.Event {
	return &types.Event{
		Type: TypeLPStakingAdminRotated,
		Attributes: map[string]string{
			"previous": formatAddr(e.Previous),
			"next":     formatAddr(e.Next),
		},
	}
}
