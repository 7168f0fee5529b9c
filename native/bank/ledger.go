package bank

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"lumenstake/core/types"
	"lumenstake/storage"
)

var (
	ErrInvalidAmount       = errors.New("bank: amount must be positive")
	ErrInsufficientBalance = errors.New("bank: insufficient balance")
)

var accountPrefix = []byte("bank/account/")

type storedAccount struct {
	Nonce       uint64
	BalanceLMNR []byte
}

// Ledger is the fungible LMNR token collaborator: plain balance records in
// the key-value store, moved only by explicit transfers.
type Ledger struct {
	db storage.Database
}

// NewLedger binds a token ledger to the provided database.
func NewLedger(db storage.Database) *Ledger {
	return &Ledger{db: db}
}

// Account loads the balance record for an address, returning a zero-valued
// account when none exists yet.
func (l *Ledger) Account(addr [20]byte) (*types.Account, error) {
	raw, ok, err := l.db.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	if !ok {
		return (&types.Account{}).EnsureBalances(), nil
	}
	var stored storedAccount
	if err := rlp.DecodeBytes(raw, &stored); err != nil {
		return nil, fmt.Errorf("bank: decode account: %w", err)
	}
	return &types.Account{
		Nonce:       stored.Nonce,
		BalanceLMNR: new(big.Int).SetBytes(stored.BalanceLMNR),
	}, nil
}

// PutAccount persists the balance record for an address.
func (l *Ledger) PutAccount(addr [20]byte, account *types.Account) error {
	account = account.EnsureBalances()
	stored := storedAccount{
		Nonce:       account.Nonce,
		BalanceLMNR: account.BalanceLMNR.Bytes(),
	}
	raw, err := rlp.EncodeToBytes(&stored)
	if err != nil {
		return fmt.Errorf("bank: encode account: %w", err)
	}
	return l.db.Put(accountKey(addr), raw)
}

// BalanceOf returns the LMNR balance held by an address.
func (l *Ledger) BalanceOf(addr [20]byte) (*big.Int, error) {
	account, err := l.Account(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(account.BalanceLMNR), nil
}

// Transfer moves amount from one address to another. Fails without touching
// either record when the sender's balance is insufficient.
func (l *Ledger) Transfer(from, to [20]byte, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	sender, err := l.Account(from)
	if err != nil {
		return err
	}
	if sender.BalanceLMNR.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	receiver, err := l.Account(to)
	if err != nil {
		return err
	}
	sender.BalanceLMNR = new(big.Int).Sub(sender.BalanceLMNR, amount)
	receiver.BalanceLMNR = new(big.Int).Add(receiver.BalanceLMNR, amount)
	if err := l.PutAccount(from, sender); err != nil {
		return err
	}
	return l.PutAccount(to, receiver)
}

// Mint credits freshly issued LMNR to an address. Used by genesis tooling and
// tests; the staking engine itself only ever transfers.
func (l *Ledger) Mint(addr [20]byte, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	account, err := l.Account(addr)
	if err != nil {
		return err
	}
	account.BalanceLMNR = new(big.Int).Add(account.BalanceLMNR, amount)
	return l.PutAccount(addr, account)
}

func accountKey(addr [20]byte) []byte {
	buf := make([]byte, 0, len(accountPrefix)+20)
	buf = append(buf, accountPrefix...)
	return append(buf, addr[:]...)
}
