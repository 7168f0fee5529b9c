package bank

import (
	"errors"
	"math/big"
	"testing"

	"lumenstake/storage"
)

func addr(fill byte) [20]byte {
	var out [20]byte
	for i := range out {
		out[i] = fill
	}
	return out
}

func TestLedgerMintAndBalance(t *testing.T) {
	ledger := NewLedger(storage.NewMemDB())
	alice := addr(0x01)

	balance, err := ledger.BalanceOf(alice)
	if err != nil {
		t.Fatalf("balance of fresh account: %v", err)
	}
	if balance.Sign() != 0 {
		t.Fatalf("fresh account has balance %s", balance)
	}

	if err := ledger.Mint(alice, big.NewInt(1_000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Mint(alice, big.NewInt(500)); err != nil {
		t.Fatalf("second mint: %v", err)
	}
	balance, err = ledger.BalanceOf(alice)
	if err != nil {
		t.Fatalf("balance after mint: %v", err)
	}
	if balance.Cmp(big.NewInt(1_500)) != 0 {
		t.Fatalf("mint did not accumulate: %s", balance)
	}

	if err := ledger.Mint(alice, big.NewInt(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero mint, got %v", err)
	}
}

func TestLedgerTransfer(t *testing.T) {
	ledger := NewLedger(storage.NewMemDB())
	alice := addr(0x01)
	bob := addr(0x02)

	if err := ledger.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Transfer(alice, bob, big.NewInt(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	aliceBalance, _ := ledger.BalanceOf(alice)
	bobBalance, _ := ledger.BalanceOf(bob)
	if aliceBalance.Cmp(big.NewInt(60)) != 0 || bobBalance.Cmp(big.NewInt(40)) != 0 {
		t.Fatalf("transfer balances wrong: alice=%s bob=%s", aliceBalance, bobBalance)
	}

	if err := ledger.Transfer(alice, bob, big.NewInt(61)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	aliceBalance, _ = ledger.BalanceOf(alice)
	bobBalance, _ = ledger.BalanceOf(bob)
	if aliceBalance.Cmp(big.NewInt(60)) != 0 || bobBalance.Cmp(big.NewInt(40)) != 0 {
		t.Fatalf("failed transfer moved funds: alice=%s bob=%s", aliceBalance, bobBalance)
	}

	if err := ledger.Transfer(alice, bob, big.NewInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative transfer, got %v", err)
	}
}

func TestLedgerSelfTransferIsNeutral(t *testing.T) {
	ledger := NewLedger(storage.NewMemDB())
	alice := addr(0x03)
	if err := ledger.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Transfer(alice, alice, big.NewInt(100)); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	balance, _ := ledger.BalanceOf(alice)
	if balance.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("self transfer changed balance: %s", balance)
	}
	if err := ledger.Transfer(alice, alice, big.NewInt(101)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("self transfer bypassed balance check: %v", err)
	}
}

func TestLedgerAccountRoundTrip(t *testing.T) {
	ledger := NewLedger(storage.NewMemDB())
	alice := addr(0x04)

	account, err := ledger.Account(alice)
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	account.Nonce = 9
	account.BalanceLMNR = big.NewInt(77)
	if err := ledger.PutAccount(alice, account); err != nil {
		t.Fatalf("put account: %v", err)
	}
	loaded, err := ledger.Account(alice)
	if err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if loaded.Nonce != 9 || loaded.BalanceLMNR.Cmp(big.NewInt(77)) != 0 {
		t.Fatalf("account did not round-trip: %+v", loaded)
	}
}
