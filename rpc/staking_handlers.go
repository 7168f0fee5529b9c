package rpc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"lumenstake/crypto"
	"lumenstake/native/lpstaking"
)

type poolRefParams struct {
	PoolIndex uint32 `json:"poolIndex"`
}

type accountPoolParams struct {
	Account   string `json:"account"`
	PoolIndex uint32 `json:"poolIndex"`
}

type addPoolParams struct {
	Caller string `json:"caller"`
	PoolID string `json:"poolId"`
}

type removePoolParams struct {
	Caller    string `json:"caller"`
	PoolIndex uint32 `json:"poolIndex"`
}

type setMerkleRootParams struct {
	Caller         string `json:"caller"`
	PoolIndex      uint32 `json:"poolIndex"`
	Root           string `json:"root"`
	SnapshotHeight uint64 `json:"snapshotHeight"`
}

type setRewardRateParams struct {
	Caller string `json:"caller"`
	Rate   string `json:"rate"`
}

type setAdminParams struct {
	Caller   string `json:"caller"`
	NewAdmin string `json:"newAdmin"`
}

type adminSetStakeParams struct {
	Caller    string `json:"caller"`
	Account   string `json:"account"`
	PoolIndex uint32 `json:"poolIndex"`
	Amount    string `json:"amount"`
}

type amountParams struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type stakeParams struct {
	Caller    string   `json:"caller"`
	PoolIndex uint32   `json:"poolIndex"`
	LpBalance string   `json:"lpBalance"`
	Proof     []string `json:"proof"`
}

type stakerInfoResult struct {
	StakedAmount   string `json:"stakedAmount"`
	RewardDebt     string `json:"rewardDebt"`
	PendingRewards string `json:"pendingRewards"`
	EpochID        uint64 `json:"epochId"`
}

type poolStateResult struct {
	AccRewardPerShare     string `json:"accRewardPerShare"`
	PrevAccRewardPerShare string `json:"prevAccRewardPerShare"`
	TotalStaked           string `json:"totalStaked"`
	LastRewardTime        uint64 `json:"lastRewardTime"`
}

type merkleRootResult struct {
	Root           string `json:"root"`
	EpochID        uint64 `json:"epochId"`
	SnapshotHeight uint64 `json:"snapshotHeight"`
	PostedAt       uint64 `json:"postedAt"`
}

type claimResult struct {
	Claimed string `json:"claimed"`
}

type okResult struct {
	OK bool `json:"ok"`
}

type addPoolResult struct {
	PoolIndex uint32 `json:"poolIndex"`
}

func decodeParams(params []json.RawMessage, out interface{}) error {
	if len(params) != 1 {
		return fmt.Errorf("expected exactly one parameter object")
	}
	if err := json.Unmarshal(params[0], out); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func parseAddr(value string) ([20]byte, error) {
	var out [20]byte
	decoded, err := crypto.DecodeAddress(strings.TrimSpace(value))
	if err != nil {
		return out, fmt.Errorf("invalid address: %w", err)
	}
	copy(out[:], decoded.Bytes())
	return out, nil
}

func parseAmount(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

func parseHash32(value string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(value), "0x"))
	if err != nil {
		return out, fmt.Errorf("invalid hash: %w", err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("hash must be 32 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func (s *Server) handleAddPool(params []json.RawMessage) (interface{}, error) {
	var p addPoolParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	poolID, err := parseHash32(p.PoolID)
	if err != nil {
		return nil, err
	}
	index, err := s.engine.AddPool(caller, poolID)
	if err != nil {
		return nil, err
	}
	if count, err := s.engine.PoolCount(); err == nil {
		s.metrics.SetPoolCount(count)
	}
	return addPoolResult{PoolIndex: index}, nil
}

func (s *Server) handleRemovePool(params []json.RawMessage) (interface{}, error) {
	var p removePoolParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.engine.RemovePool(caller, p.PoolIndex); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handleSetMerkleRoot(params []json.RawMessage) (interface{}, error) {
	var p setMerkleRootParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	root, err := parseHash32(p.Root)
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetMerkleRoot(caller, p.PoolIndex, root, p.SnapshotHeight); err != nil {
		return nil, err
	}
	s.metrics.ObserveRootPosted(strconv.FormatUint(uint64(p.PoolIndex), 10))
	return okResult{OK: true}, nil
}

func (s *Server) handleSetRewardRate(params []json.RawMessage) (interface{}, error) {
	var p setRewardRateParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	rate, err := parseAmount(p.Rate)
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetRewardRate(caller, rate); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handleSetAdmin(params []json.RawMessage) (interface{}, error) {
	var p setAdminParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	newAdmin, err := parseAddr(p.NewAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetAdmin(caller, newAdmin); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handleAdminSetStake(params []json.RawMessage) (interface{}, error) {
	var p adminSetStakeParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	account, err := parseAddr(p.Account)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.AdminSetStake(caller, account, p.PoolIndex, amount); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handleWithdraw(params []json.RawMessage) (interface{}, error) {
	var p amountParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Withdraw(caller, amount); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handleFund(params []json.RawMessage) (interface{}, error) {
	var p amountParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Fund(caller, amount); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handleStake(params []json.RawMessage) (interface{}, error) {
	var p stakeParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Caller)
	if err != nil {
		return nil, err
	}
	balance, err := parseAmount(p.LpBalance)
	if err != nil {
		return nil, err
	}
	proof := make([][32]byte, 0, len(p.Proof))
	for _, encoded := range p.Proof {
		node, err := parseHash32(encoded)
		if err != nil {
			return nil, err
		}
		proof = append(proof, node)
	}
	if err := s.engine.Stake(caller, p.PoolIndex, balance, proof); err != nil {
		return nil, err
	}
	s.metrics.ObserveStake(strconv.FormatUint(uint64(p.PoolIndex), 10))
	return okResult{OK: true}, nil
}

func (s *Server) handleClaim(params []json.RawMessage) (interface{}, error) {
	var p accountPoolParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Account)
	if err != nil {
		return nil, err
	}
	claimed, err := s.engine.Claim(caller, p.PoolIndex)
	if err != nil {
		return nil, err
	}
	amount, _ := new(big.Float).SetInt(claimed).Float64()
	s.metrics.ObserveClaim(amount)
	return claimResult{Claimed: claimed.String()}, nil
}

func (s *Server) handleUnstake(params []json.RawMessage) (interface{}, error) {
	var p accountPoolParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddr(p.Account)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Unstake(caller, p.PoolIndex); err != nil {
		return nil, err
	}
	return okResult{OK: true}, nil
}

func (s *Server) handlePendingReward(params []json.RawMessage) (interface{}, error) {
	var p accountPoolParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	account, err := parseAddr(p.Account)
	if err != nil {
		return nil, err
	}
	pending, err := s.engine.PendingReward(account, p.PoolIndex)
	if err != nil {
		return nil, err
	}
	return map[string]string{"pending": pending.String()}, nil
}

func (s *Server) handleStakerInfo(params []json.RawMessage) (interface{}, error) {
	var p accountPoolParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	account, err := parseAddr(p.Account)
	if err != nil {
		return nil, err
	}
	entry, found, err := s.engine.StakerInfo(account, p.PoolIndex)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, lpstaking.ErrNoStakeFound
	}
	return stakerInfoResult{
		StakedAmount:   entry.StakedAmount.String(),
		RewardDebt:     entry.RewardDebt.String(),
		PendingRewards: entry.PendingRewards.String(),
		EpochID:        entry.EpochID,
	}, nil
}

func (s *Server) handlePoolState(params []json.RawMessage) (interface{}, error) {
	var p poolRefParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	state, err := s.engine.PoolInfo(p.PoolIndex)
	if err != nil {
		return nil, err
	}
	return poolStateResult{
		AccRewardPerShare:     state.AccRewardPerShare.String(),
		PrevAccRewardPerShare: state.PrevAccRewardPerShare.String(),
		TotalStaked:           state.TotalStaked.String(),
		LastRewardTime:        state.LastRewardTime,
	}, nil
}

func (s *Server) handleMerkleRoot(params []json.RawMessage) (interface{}, error) {
	var p poolRefParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	root, found, err := s.engine.MerkleRoot(p.PoolIndex)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, lpstaking.ErrNoMerkleRoot
	}
	return merkleRootResult{
		Root:           hex.EncodeToString(root.Root[:]),
		EpochID:        root.EpochID,
		SnapshotHeight: root.SnapshotHeight,
		PostedAt:       root.PostedAt,
	}, nil
}

func (s *Server) handlePoolCount(params []json.RawMessage) (interface{}, error) {
	count, err := s.engine.PoolCount()
	if err != nil {
		return nil, err
	}
	return map[string]uint32{"count": count}, nil
}

func (s *Server) handlePoolID(params []json.RawMessage) (interface{}, error) {
	var p poolRefParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	id, err := s.engine.PoolID(p.PoolIndex)
	if err != nil {
		return nil, err
	}
	return map[string]string{"poolId": hex.EncodeToString(id[:])}, nil
}

func (s *Server) handleRewardBalance(params []json.RawMessage) (interface{}, error) {
	balance, err := s.engine.RewardBalance()
	if err != nil {
		return nil, err
	}
	return map[string]string{"balance": balance.String()}, nil
}
