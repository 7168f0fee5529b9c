package lpstaking

import "errors"

var (
	ErrNotInitialized            = errors.New("lpstaking: not initialized")
	ErrAlreadyInitialized        = errors.New("lpstaking: already initialized")
	ErrUnauthorized              = errors.New("lpstaking: unauthorized")
	ErrPoolExists                = errors.New("lpstaking: pool already registered")
	ErrPoolNotFound              = errors.New("lpstaking: pool not found")
	ErrNoMerkleRoot              = errors.New("lpstaking: no merkle root posted")
	ErrInvalidProof              = errors.New("lpstaking: merkle proof does not verify")
	ErrAlreadyStakedThisEpoch    = errors.New("lpstaking: already staked this epoch")
	ErrNoStakeFound              = errors.New("lpstaking: no stake found")
	ErrNoRewardsToClaim          = errors.New("lpstaking: no rewards to claim")
	ErrInsufficientRewardBalance = errors.New("lpstaking: insufficient reward balance")
	ErrInvalidAmount             = errors.New("lpstaking: invalid amount")
	ErrAmountOverflow            = errors.New("lpstaking: amount exceeds 128-bit range")
)
