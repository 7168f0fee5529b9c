package lpstaking

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"time"

	"lumenstake/core/events"
)

var (
	errNilState = errors.New("lpstaking engine: state not configured")
	errNilToken = errors.New("lpstaking engine: token ledger not configured")
)

// engineState is the persistence surface the orchestrator needs. *Keeper is
// the production implementation; tests may substitute their own.
type engineState interface {
	Admin() ([20]byte, bool, error)
	SetAdmin(addr [20]byte) error
	RewardRate() (*big.Int, error)
	SetRewardRate(rate *big.Int) error
	PoolCount() (uint32, error)
	SetPoolCount(count uint32) error
	PoolID(index uint32) ([32]byte, bool, error)
	SetPoolID(index uint32, id [32]byte) error
	PoolIndexByID(id [32]byte) (uint32, bool, error)
	SetPoolIndexByID(id [32]byte, index uint32) error
	PoolState(index uint32) (*PoolState, error)
	SetPoolState(index uint32, state *PoolState) error
	EpochRoot(index uint32) (*EpochRoot, bool, error)
	SetEpochRoot(index uint32, root *EpochRoot) error
	Staker(account [20]byte, index uint32) (*StakerEntry, bool, error)
	SetStaker(account [20]byte, index uint32, entry *StakerEntry) error
	RemoveStaker(account [20]byte, index uint32) error
}

// TokenLedger is the fungible-token collaborator used by claim, fund and
// withdraw. The engine never mints; it only moves existing balances.
type TokenLedger interface {
	BalanceOf(addr [20]byte) (*big.Int, error)
	Transfer(from, to [20]byte, amount *big.Int) error
}

// Authenticator asserts that the call was authorized by the named account.
// Failure aborts the operation before any state is touched.
type Authenticator interface {
	Authenticate(caller [20]byte) error
}

// NoopAuthenticator trusts every caller. Useful when authentication is
// enforced upstream (e.g. by signature recovery in the RPC layer).
type NoopAuthenticator struct{}

// Authenticate implements the Authenticator interface.
func (NoopAuthenticator) Authenticate([20]byte) error { return nil }

// ModuleAddress is the address that holds the reward float on the token
// ledger. Derived from a fixed tag so every deployment agrees on it.
func ModuleAddress() [20]byte {
	sum := sha256.Sum256([]byte("lumenstake/lpstaking/module"))
	var addr [20]byte
	copy(addr[:], sum[12:])
	return addr
}

// Engine orchestrates the staking lifecycle: Merkle-gated admission, reward
// accrual, epoch rotation and payouts. Calls execute one at a time to
// completion; each either fully commits or leaves persisted state untouched.
type Engine struct {
	state   engineState
	token   TokenLedger
	auth    Authenticator
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a staking engine with a no-op emitter and permissive
// authenticator. Callers override the collaborators via the setters.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		auth:    NoopAuthenticator{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the persistence backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetToken configures the fungible-token collaborator.
func (e *Engine) SetToken(token TokenLedger) { e.token = token }

// SetAuthenticator configures the caller-authentication collaborator.
// Passing nil resets to the permissive default.
func (e *Engine) SetAuthenticator(auth Authenticator) {
	if auth == nil {
		e.auth = NoopAuthenticator{}
		return
	}
	e.auth = auth
}

// SetEmitter configures the event emitter. Passing nil resets to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source. Primarily intended for tests.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) now() uint64 {
	ts := e.nowFn()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

// ========== Admin Operations ==========

// Initialize performs one-time bootstrap of the admin role and global reward
// rate (LMNR units per second).
func (e *Engine) Initialize(caller, admin [20]byte, rewardRate *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := e.auth.Authenticate(caller); err != nil {
		return err
	}
	if _, ok, err := e.state.Admin(); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}
	if rewardRate == nil || rewardRate.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := e.state.SetAdmin(admin); err != nil {
		return err
	}
	if err := e.state.SetRewardRate(rewardRate); err != nil {
		return err
	}
	return e.state.SetPoolCount(0)
}

// AddPool registers a new liquidity pool for staking and returns its dense
// index.
func (e *Engine) AddPool(caller [20]byte, poolID [32]byte) (uint32, error) {
	if err := e.requireAdmin(caller); err != nil {
		return 0, err
	}
	if _, exists, err := e.state.PoolIndexByID(poolID); err != nil {
		return 0, err
	} else if exists {
		return 0, ErrPoolExists
	}
	index, err := e.state.PoolCount()
	if err != nil {
		return 0, err
	}
	if err := e.state.SetPoolID(index, poolID); err != nil {
		return 0, err
	}
	if err := e.state.SetPoolIndexByID(poolID, index); err != nil {
		return 0, err
	}
	state := (&PoolState{LastRewardTime: e.now()}).normalize()
	if err := e.state.SetPoolState(index, state); err != nil {
		return 0, err
	}
	if err := e.state.SetPoolCount(index + 1); err != nil {
		return 0, err
	}
	e.emit(events.LPStakingPoolAdded{PoolID: poolID, PoolIndex: index})
	return index, nil
}

// RemovePool deactivates a pool. Accrued rewards are settled first, then the
// counted stake is zeroed so accrual stops. Banked pendings stay claimable.
func (e *Engine) RemovePool(caller [20]byte, poolIndex uint32) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return err
	}
	state, err := e.loadAccruedPool(poolIndex)
	if err != nil {
		return err
	}
	state.TotalStaked = big.NewInt(0)
	if err := e.state.SetPoolState(poolIndex, state); err != nil {
		return err
	}
	e.emit(events.LPStakingPoolRemoved{PoolIndex: poolIndex})
	return nil
}

// SetMerkleRoot posts a new snapshot root for a pool, rotating its epoch.
// The live accumulator is frozen into the previous-epoch slot and the counted
// stake is zeroed: every holder must re-prove under the new root to keep
// earning.
func (e *Engine) SetMerkleRoot(caller [20]byte, poolIndex uint32, root [32]byte, snapshotHeight uint64) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return err
	}
	state, err := e.loadAccruedPool(poolIndex)
	if err != nil {
		return err
	}
	state.PrevAccRewardPerShare = cloneBig(state.AccRewardPerShare)
	state.TotalStaked = big.NewInt(0)

	epochID := uint64(1)
	if prior, ok, err := e.state.EpochRoot(poolIndex); err != nil {
		return err
	} else if ok {
		epochID = prior.EpochID + 1
	}
	if err := e.state.SetPoolState(poolIndex, state); err != nil {
		return err
	}
	record := &EpochRoot{
		Root:           root,
		EpochID:        epochID,
		SnapshotHeight: snapshotHeight,
		PostedAt:       e.now(),
	}
	if err := e.state.SetEpochRoot(poolIndex, record); err != nil {
		return err
	}
	e.emit(events.LPStakingRootPosted{
		PoolIndex:      poolIndex,
		EpochID:        epochID,
		Root:           root,
		SnapshotHeight: snapshotHeight,
		PostedAt:       record.PostedAt,
	})
	return nil
}

// SetRewardRate updates the global reward rate. Every pool's accumulator is
// advanced at the old rate first so the new rate only applies to time elapsed
// after this call.
func (e *Engine) SetRewardRate(caller [20]byte, newRate *big.Int) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if newRate == nil || newRate.Sign() < 0 {
		return ErrInvalidAmount
	}
	count, err := e.state.PoolCount()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		state, err := e.loadAccruedPool(i)
		if err != nil {
			return err
		}
		if err := e.state.SetPoolState(i, state); err != nil {
			return err
		}
	}
	if err := e.state.SetRewardRate(newRate); err != nil {
		return err
	}
	e.emit(events.LPStakingRateUpdated{Rate: cloneBig(newRate)})
	return nil
}

// SetAdmin hands the admin role to a new address.
func (e *Engine) SetAdmin(caller, newAdmin [20]byte) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.SetAdmin(newAdmin); err != nil {
		return err
	}
	e.emit(events.LPStakingAdminRotated{Previous: caller, Next: newAdmin})
	return nil
}

// AdminSetStake force-sets an account's counted stake, bypassing proof
// verification. Used for reconciliation; a zero amount is a valid
// "kick to zero". Existing pending reward is banked before the override.
func (e *Engine) AdminSetStake(caller, account [20]byte, poolIndex uint32, newAmount *big.Int) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return err
	}
	if newAmount == nil || newAmount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if !fitsInt128(newAmount) {
		return ErrAmountOverflow
	}
	state, err := e.loadAccruedPool(poolIndex)
	if err != nil {
		return err
	}
	root, rootFound, err := e.state.EpochRoot(poolIndex)
	if err != nil {
		return err
	}
	entry, found, err := e.state.Staker(account, poolIndex)
	if err != nil {
		return err
	}

	pending := big.NewInt(0)
	if found {
		isCurrent := entry.EpochID == 0
		if rootFound {
			isCurrent = entry.EpochID == root.EpochID
		}
		pending = pendingFor(state, entry, isCurrent)
		// A stale entry's old stake was already excluded from the pool total
		// in aggregate by the epoch rotation; only a currently counted
		// contribution is removed again.
		if isCurrent && entry.StakedAmount.Sign() > 0 {
			state.TotalStaked = new(big.Int).Sub(state.TotalStaked, entry.StakedAmount)
		}
	}
	state.TotalStaked = new(big.Int).Add(state.TotalStaked, newAmount)

	epochID := uint64(0)
	if rootFound {
		epochID = root.EpochID
	}
	if err := e.state.SetPoolState(poolIndex, state); err != nil {
		return err
	}
	if err := e.state.SetStaker(account, poolIndex, &StakerEntry{
		StakedAmount:   cloneBig(newAmount),
		RewardDebt:     computeRewardDebt(newAmount, state.AccRewardPerShare),
		PendingRewards: pending,
		EpochID:        epochID,
	}); err != nil {
		return err
	}
	e.emit(events.LPStakingStakeOverridden{
		Account:   account,
		PoolIndex: poolIndex,
		Amount:    cloneBig(newAmount),
		EpochID:   epochID,
	})
	return nil
}

// Fund transfers LMNR from the funder into the module account for reward
// distribution.
func (e *Engine) Fund(caller [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if e.token == nil {
		return errNilToken
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := e.auth.Authenticate(caller); err != nil {
		return err
	}
	if err := e.token.Transfer(caller, ModuleAddress(), amount); err != nil {
		return err
	}
	e.emit(events.LPStakingFunded{Funder: caller, Amount: cloneBig(amount)})
	return nil
}

// Withdraw drains LMNR from the module account back to the admin. The amount
// must not exceed the module's current holding.
func (e *Engine) Withdraw(caller [20]byte, amount *big.Int) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if e.token == nil {
		return errNilToken
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	held, err := e.token.BalanceOf(ModuleAddress())
	if err != nil {
		return err
	}
	if held.Cmp(amount) < 0 {
		return ErrInsufficientRewardBalance
	}
	if err := e.token.Transfer(ModuleAddress(), caller, amount); err != nil {
		return err
	}
	e.emit(events.LPStakingWithdrawn{Recipient: caller, Amount: cloneBig(amount)})
	return nil
}

// ========== User Operations ==========

// Stake admits the caller into a pool's current epoch by verifying a Merkle
// proof of their LP balance against the active snapshot root. Re-admission
// within the same epoch while already counted is rejected. Any reward owed
// under a previous entry is banked into the new one.
func (e *Engine) Stake(caller [20]byte, poolIndex uint32, lpBalance *big.Int, proof [][32]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := e.auth.Authenticate(caller); err != nil {
		return err
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return err
	}
	if lpBalance == nil || lpBalance.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !fitsInt128(lpBalance) {
		return ErrAmountOverflow
	}
	root, rootFound, err := e.state.EpochRoot(poolIndex)
	if err != nil {
		return err
	}
	if !rootFound {
		return ErrNoMerkleRoot
	}
	leaf := ComputeLeaf(poolIndex, caller, lpBalance, root.EpochID)
	if !VerifyProof(leaf, proof, root.Root) {
		return ErrInvalidProof
	}

	state, err := e.loadAccruedPool(poolIndex)
	if err != nil {
		return err
	}
	entry, found, err := e.state.Staker(caller, poolIndex)
	if err != nil {
		return err
	}

	pending := big.NewInt(0)
	if found {
		if entry.EpochID == root.EpochID && entry.StakedAmount.Sign() > 0 {
			return ErrAlreadyStakedThisEpoch
		}
		pending = pendingFor(state, entry, entry.EpochID == root.EpochID)
	}
	state.TotalStaked = new(big.Int).Add(state.TotalStaked, lpBalance)
	if err := e.state.SetPoolState(poolIndex, state); err != nil {
		return err
	}
	if err := e.state.SetStaker(caller, poolIndex, &StakerEntry{
		StakedAmount:   cloneBig(lpBalance),
		RewardDebt:     computeRewardDebt(lpBalance, state.AccRewardPerShare),
		PendingRewards: pending,
		EpochID:        root.EpochID,
	}); err != nil {
		return err
	}
	e.emit(events.LPStakingStaked{
		Account:   caller,
		PoolIndex: poolIndex,
		Amount:    cloneBig(lpBalance),
		EpochID:   root.EpochID,
	})
	return nil
}

// Claim pays out the caller's accumulated reward and returns the amount.
// A stale entry's pending is paid against the frozen previous-epoch
// accumulator; the entry then earns nothing further until re-admitted.
func (e *Engine) Claim(caller [20]byte, poolIndex uint32) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if e.token == nil {
		return nil, errNilToken
	}
	if err := e.auth.Authenticate(caller); err != nil {
		return nil, err
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return nil, err
	}
	entry, found, err := e.state.Staker(caller, poolIndex)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoStakeFound
	}
	state, err := e.loadAccruedPool(poolIndex)
	if err != nil {
		return nil, err
	}
	isCurrent, err := e.isCurrentEpoch(poolIndex, entry)
	if err != nil {
		return nil, err
	}
	pending := pendingFor(state, entry, isCurrent)
	if pending.Sign() <= 0 {
		return nil, ErrNoRewardsToClaim
	}
	held, err := e.token.BalanceOf(ModuleAddress())
	if err != nil {
		return nil, err
	}
	if held.Cmp(pending) < 0 {
		return nil, ErrInsufficientRewardBalance
	}
	if err := e.state.SetPoolState(poolIndex, state); err != nil {
		return nil, err
	}
	if err := e.token.Transfer(ModuleAddress(), caller, pending); err != nil {
		return nil, err
	}
	if isCurrent {
		entry.RewardDebt = computeRewardDebt(entry.StakedAmount, state.AccRewardPerShare)
	}
	entry.PendingRewards = big.NewInt(0)
	if err := e.state.SetStaker(caller, poolIndex, entry); err != nil {
		return nil, err
	}
	e.emit(events.LPStakingClaimed{Account: caller, PoolIndex: poolIndex, Amount: cloneBig(pending)})
	return pending, nil
}

// Unstake exits the caller from the pool's accounting. Pending reward is
// preserved: the entry is retained with zero stake when anything is owed,
// deleted outright otherwise.
func (e *Engine) Unstake(caller [20]byte, poolIndex uint32) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := e.auth.Authenticate(caller); err != nil {
		return err
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return err
	}
	entry, found, err := e.state.Staker(caller, poolIndex)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoStakeFound
	}
	state, err := e.loadAccruedPool(poolIndex)
	if err != nil {
		return err
	}
	isCurrent, err := e.isCurrentEpoch(poolIndex, entry)
	if err != nil {
		return err
	}
	pending := pendingFor(state, entry, isCurrent)
	if isCurrent && entry.StakedAmount.Sign() > 0 {
		state.TotalStaked = new(big.Int).Sub(state.TotalStaked, entry.StakedAmount)
	}
	if err := e.state.SetPoolState(poolIndex, state); err != nil {
		return err
	}
	if pending.Sign() > 0 {
		if err := e.state.SetStaker(caller, poolIndex, &StakerEntry{
			StakedAmount:   big.NewInt(0),
			RewardDebt:     big.NewInt(0),
			PendingRewards: pending,
			EpochID:        entry.EpochID,
		}); err != nil {
			return err
		}
	} else if err := e.state.RemoveStaker(caller, poolIndex); err != nil {
		return err
	}
	e.emit(events.LPStakingUnstaked{
		Account:   caller,
		PoolIndex: poolIndex,
		Amount:    cloneBig(entry.StakedAmount),
		Pending:   pending,
	})
	return nil
}

// ========== Queries ==========

// PendingReward reports the reward currently owed to an account without
// mutating any state; the accumulator advance is simulated.
func (e *Engine) PendingReward(account [20]byte, poolIndex uint32) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return nil, err
	}
	entry, found, err := e.state.Staker(account, poolIndex)
	if err != nil {
		return nil, err
	}
	if !found {
		return big.NewInt(0), nil
	}
	state, err := e.state.PoolState(poolIndex)
	if err != nil {
		return nil, err
	}
	isCurrent, err := e.isCurrentEpoch(poolIndex, entry)
	if err != nil {
		return nil, err
	}
	if !isCurrent {
		return pendingAgainst(entry, state.PrevAccRewardPerShare), nil
	}
	rate, err := e.state.RewardRate()
	if err != nil {
		return nil, err
	}
	acc := simulateAccRewardPerShare(state, rate, e.now())
	return pendingAgainst(entry, acc), nil
}

// StakerInfo returns the ledger entry for an account/pool pair.
func (e *Engine) StakerInfo(account [20]byte, poolIndex uint32) (*StakerEntry, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return nil, false, err
	}
	entry, found, err := e.state.Staker(account, poolIndex)
	if err != nil || !found {
		return nil, false, err
	}
	return entry.Copy(), true, nil
}

// PoolInfo returns a pool's persisted accounting state.
func (e *Engine) PoolInfo(poolIndex uint32) (*PoolState, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return nil, err
	}
	state, err := e.state.PoolState(poolIndex)
	if err != nil {
		return nil, err
	}
	return state.Copy(), nil
}

// MerkleRoot returns the active snapshot root for a pool, if any.
func (e *Engine) MerkleRoot(poolIndex uint32) (*EpochRoot, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return nil, false, err
	}
	root, found, err := e.state.EpochRoot(poolIndex)
	if err != nil || !found {
		return nil, false, err
	}
	return root.Copy(), true, nil
}

// PoolCount returns the number of registered pools.
func (e *Engine) PoolCount() (uint32, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	return e.state.PoolCount()
}

// PoolID returns the external pool identifier at a dense index.
func (e *Engine) PoolID(poolIndex uint32) ([32]byte, error) {
	var id [32]byte
	if e == nil || e.state == nil {
		return id, errNilState
	}
	if err := e.requireValidPool(poolIndex); err != nil {
		return id, err
	}
	id, found, err := e.state.PoolID(poolIndex)
	if err != nil {
		return id, err
	}
	if !found {
		return id, ErrPoolNotFound
	}
	return id, nil
}

// PoolIndexByID resolves a pool's dense index from its external identifier.
func (e *Engine) PoolIndexByID(poolID [32]byte) (uint32, bool, error) {
	if e == nil || e.state == nil {
		return 0, false, errNilState
	}
	return e.state.PoolIndexByID(poolID)
}

// RewardBalance returns the LMNR float held by the module account.
func (e *Engine) RewardBalance() (*big.Int, error) {
	if e == nil || e.token == nil {
		return nil, errNilToken
	}
	return e.token.BalanceOf(ModuleAddress())
}

// RewardRate returns the global per-second reward rate.
func (e *Engine) RewardRate() (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	return e.state.RewardRate()
}

// Admin returns the configured admin address.
func (e *Engine) Admin() ([20]byte, bool, error) {
	if e == nil || e.state == nil {
		return [20]byte{}, false, errNilState
	}
	return e.state.Admin()
}

// ========== Internal Helpers ==========

func (e *Engine) requireAdmin(caller [20]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := e.auth.Authenticate(caller); err != nil {
		return err
	}
	admin, ok, err := e.state.Admin()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInitialized
	}
	if admin != caller {
		return ErrUnauthorized
	}
	return nil
}

func (e *Engine) requireValidPool(poolIndex uint32) error {
	count, err := e.state.PoolCount()
	if err != nil {
		return err
	}
	if poolIndex >= count {
		return ErrPoolNotFound
	}
	return nil
}

// loadAccruedPool returns the pool state advanced to now in memory. Callers
// persist it on the success path only, so rejected operations leave storage
// untouched.
func (e *Engine) loadAccruedPool(poolIndex uint32) (*PoolState, error) {
	state, err := e.state.PoolState(poolIndex)
	if err != nil {
		return nil, err
	}
	rate, err := e.state.RewardRate()
	if err != nil {
		return nil, err
	}
	accrue(state, rate, e.now())
	return state, nil
}

// isCurrentEpoch reports whether the entry belongs to the pool's active
// epoch. Before any root is posted the active epoch is zero, which only
// admin-created entries can carry.
func (e *Engine) isCurrentEpoch(poolIndex uint32, entry *StakerEntry) (bool, error) {
	root, found, err := e.state.EpochRoot(poolIndex)
	if err != nil {
		return false, err
	}
	if !found {
		return entry.EpochID == 0, nil
	}
	return entry.EpochID == root.EpochID, nil
}
