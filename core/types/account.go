package types

import "math/big"

// Account is the balance record kept for every address that has touched the
// LMNR ledger, including the staking module account that holds the reward
// float.
type Account struct {
	Nonce       uint64   `json:"nonce"`
	BalanceLMNR *big.Int `json:"balanceLMNR"`
}

// EnsureBalances replaces nil balance pointers with zero values so callers can
// mutate the account without nil checks.
func (a *Account) EnsureBalances() *Account {
	if a == nil {
		return &Account{BalanceLMNR: big.NewInt(0)}
	}
	if a.BalanceLMNR == nil {
		a.BalanceLMNR = big.NewInt(0)
	}
	return a
}
