package lpstaking

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"lumenstake/storage"
)

var (
	keyAdmin        = []byte("lpstaking/admin")
	keyRewardRate   = []byte("lpstaking/reward-rate")
	keyPoolCount    = []byte("lpstaking/pool-count")
	poolIDPrefix    = []byte("lpstaking/pool-id/")
	poolIndexPrefix = []byte("lpstaking/pool-index/")
	poolStatePrefix = []byte("lpstaking/pool-state/")
	rootPrefix      = []byte("lpstaking/root/")
	stakerPrefix    = []byte("lpstaking/staker/")
)

type storedPoolState struct {
	AccRewardPerShare     []byte
	PrevAccRewardPerShare []byte
	TotalStaked           []byte
	LastRewardTime        uint64
}

type storedEpochRoot struct {
	Root           [32]byte
	EpochID        uint64
	SnapshotHeight uint64
	PostedAt       uint64
}

type storedStakerEntry struct {
	StakedAmount   []byte
	RewardDebt     []byte
	PendingRewards []byte
	EpochID        uint64
}

// Keeper persists all staking module records in the underlying key-value
// store. Missing StakerEntry and EpochRoot reads are reported distinctly from
// present-but-default records.
type Keeper struct {
	db storage.Database
}

// NewKeeper binds a keeper to the provided database.
func NewKeeper(db storage.Database) *Keeper {
	return &Keeper{db: db}
}

func (k *Keeper) getRLP(key []byte, out interface{}) (bool, error) {
	raw, ok, err := k.db.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := rlp.DecodeBytes(raw, out); err != nil {
		return false, fmt.Errorf("lpstaking: decode %q: %w", key, err)
	}
	return true, nil
}

func (k *Keeper) putRLP(key []byte, value interface{}) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return fmt.Errorf("lpstaking: encode %q: %w", key, err)
	}
	return k.db.Put(key, raw)
}

// Admin returns the configured admin address, if any.
func (k *Keeper) Admin() ([20]byte, bool, error) {
	var addr [20]byte
	raw, ok, err := k.db.Get(keyAdmin)
	if err != nil || !ok {
		return addr, false, err
	}
	if len(raw) != 20 {
		return addr, false, fmt.Errorf("lpstaking: malformed admin record")
	}
	copy(addr[:], raw)
	return addr, true, nil
}

// SetAdmin stores the admin address.
func (k *Keeper) SetAdmin(addr [20]byte) error {
	return k.db.Put(keyAdmin, addr[:])
}

// RewardRate returns the global per-second reward rate, zero when unset.
func (k *Keeper) RewardRate() (*big.Int, error) {
	raw, ok, err := k.db.Get(keyRewardRate)
	if err != nil || !ok {
		return big.NewInt(0), err
	}
	return new(big.Int).SetBytes(raw), nil
}

// SetRewardRate stores the global per-second reward rate.
func (k *Keeper) SetRewardRate(rate *big.Int) error {
	if rate == nil || rate.Sign() < 0 {
		return ErrInvalidAmount
	}
	return k.db.Put(keyRewardRate, rate.Bytes())
}

// PoolCount returns the number of registered pools.
func (k *Keeper) PoolCount() (uint32, error) {
	raw, ok, err := k.db.Get(keyPoolCount)
	if err != nil || !ok {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("lpstaking: malformed pool count record")
	}
	return binary.BigEndian.Uint32(raw), nil
}

// SetPoolCount stores the number of registered pools.
func (k *Keeper) SetPoolCount(count uint32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, count)
	return k.db.Put(keyPoolCount, buf)
}

// PoolID returns the external pool identifier at the given dense index.
func (k *Keeper) PoolID(index uint32) ([32]byte, bool, error) {
	var id [32]byte
	raw, ok, err := k.db.Get(poolIDKey(index))
	if err != nil || !ok {
		return id, false, err
	}
	if len(raw) != 32 {
		return id, false, fmt.Errorf("lpstaking: malformed pool id record")
	}
	copy(id[:], raw)
	return id, true, nil
}

// SetPoolID stores the external pool identifier for an index.
func (k *Keeper) SetPoolID(index uint32, id [32]byte) error {
	return k.db.Put(poolIDKey(index), id[:])
}

// PoolIndexByID resolves the dense index assigned to an external identifier.
func (k *Keeper) PoolIndexByID(id [32]byte) (uint32, bool, error) {
	raw, ok, err := k.db.Get(poolIndexKey(id))
	if err != nil || !ok {
		return 0, false, err
	}
	if len(raw) != 4 {
		return 0, false, fmt.Errorf("lpstaking: malformed pool index record")
	}
	return binary.BigEndian.Uint32(raw), true, nil
}

// SetPoolIndexByID stores the reverse pool identifier lookup.
func (k *Keeper) SetPoolIndexByID(id [32]byte, index uint32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, index)
	return k.db.Put(poolIndexKey(id), buf)
}

// PoolState loads a pool's accounting record. A missing record decodes to the
// zero-valued state, matching the semantics of a freshly registered pool.
func (k *Keeper) PoolState(index uint32) (*PoolState, error) {
	var stored storedPoolState
	ok, err := k.getRLP(poolStateKey(index), &stored)
	if err != nil {
		return nil, err
	}
	state := &PoolState{}
	if ok {
		state.AccRewardPerShare = new(big.Int).SetBytes(stored.AccRewardPerShare)
		state.PrevAccRewardPerShare = new(big.Int).SetBytes(stored.PrevAccRewardPerShare)
		state.TotalStaked = new(big.Int).SetBytes(stored.TotalStaked)
		state.LastRewardTime = stored.LastRewardTime
	}
	return state.normalize(), nil
}

// SetPoolState persists a pool's accounting record.
func (k *Keeper) SetPoolState(index uint32, state *PoolState) error {
	if state == nil {
		return fmt.Errorf("lpstaking: nil pool state")
	}
	state.normalize()
	stored := storedPoolState{
		AccRewardPerShare:     state.AccRewardPerShare.Bytes(),
		PrevAccRewardPerShare: state.PrevAccRewardPerShare.Bytes(),
		TotalStaked:           state.TotalStaked.Bytes(),
		LastRewardTime:        state.LastRewardTime,
	}
	return k.putRLP(poolStateKey(index), &stored)
}

// EpochRoot loads the active snapshot root for a pool.
func (k *Keeper) EpochRoot(index uint32) (*EpochRoot, bool, error) {
	var stored storedEpochRoot
	ok, err := k.getRLP(rootKey(index), &stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &EpochRoot{
		Root:           stored.Root,
		EpochID:        stored.EpochID,
		SnapshotHeight: stored.SnapshotHeight,
		PostedAt:       stored.PostedAt,
	}, true, nil
}

// SetEpochRoot installs the active snapshot root for a pool, replacing any
// previous one.
func (k *Keeper) SetEpochRoot(index uint32, root *EpochRoot) error {
	if root == nil {
		return fmt.Errorf("lpstaking: nil epoch root")
	}
	stored := storedEpochRoot{
		Root:           root.Root,
		EpochID:        root.EpochID,
		SnapshotHeight: root.SnapshotHeight,
		PostedAt:       root.PostedAt,
	}
	return k.putRLP(rootKey(index), &stored)
}

// Staker loads the ledger entry for an account/pool pair.
func (k *Keeper) Staker(account [20]byte, index uint32) (*StakerEntry, bool, error) {
	var stored storedStakerEntry
	ok, err := k.getRLP(stakerKey(account, index), &stored)
	if err != nil || !ok {
		return nil, false, err
	}
	entry := &StakerEntry{
		StakedAmount:   new(big.Int).SetBytes(stored.StakedAmount),
		RewardDebt:     new(big.Int).SetBytes(stored.RewardDebt),
		PendingRewards: new(big.Int).SetBytes(stored.PendingRewards),
		EpochID:        stored.EpochID,
	}
	return entry, true, nil
}

// SetStaker persists the ledger entry for an account/pool pair.
func (k *Keeper) SetStaker(account [20]byte, index uint32, entry *StakerEntry) error {
	if entry == nil {
		return fmt.Errorf("lpstaking: nil staker entry")
	}
	entry.normalize()
	stored := storedStakerEntry{
		StakedAmount:   entry.StakedAmount.Bytes(),
		RewardDebt:     entry.RewardDebt.Bytes(),
		PendingRewards: entry.PendingRewards.Bytes(),
		EpochID:        entry.EpochID,
	}
	return k.putRLP(stakerKey(account, index), &stored)
}

// RemoveStaker deletes the ledger entry for an account/pool pair.
func (k *Keeper) RemoveStaker(account [20]byte, index uint32) error {
	return k.db.Delete(stakerKey(account, index))
}

func poolIDKey(index uint32) []byte {
	return appendUint32(poolIDPrefix, index)
}

func poolIndexKey(id [32]byte) []byte {
	buf := make([]byte, 0, len(poolIndexPrefix)+32)
	buf = append(buf, poolIndexPrefix...)
	return append(buf, id[:]...)
}

func poolStateKey(index uint32) []byte {
	return appendUint32(poolStatePrefix, index)
}

func rootKey(index uint32) []byte {
	return appendUint32(rootPrefix, index)
}

func stakerKey(account [20]byte, index uint32) []byte {
	buf := make([]byte, 0, len(stakerPrefix)+20+4)
	buf = append(buf, stakerPrefix...)
	buf = append(buf, account[:]...)
	return binary.BigEndian.AppendUint32(buf, index)
}

func appendUint32(prefix []byte, v uint32) []byte {
	buf := make([]byte, 0, len(prefix)+4)
	buf = append(buf, prefix...)
	return binary.BigEndian.AppendUint32(buf, v)
}
