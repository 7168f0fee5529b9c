package lpstaking

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// Domain separation tags. A leaf hash and an internal node hash can never
// collide because their first byte differs.
const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// fitsInt128 reports whether v fits the 16-byte signed wire encoding used by
// the snapshot leaves.
func fitsInt128(v *big.Int) bool {
	if v == nil {
		return true
	}
	return v.Cmp(minInt128) >= 0 && v.Cmp(maxInt128) <= 0
}

// ComputeLeaf hashes one snapshot entry into its Merkle leaf:
//
//	SHA-256(0x00 || pool_index_u32_be || account || lp_balance_i128_be || epoch_id_u64_be)
//
// The balance must fit a signed 128-bit integer; callers validate the range
// before building the leaf.
func ComputeLeaf(poolIndex uint32, account [20]byte, lpBalance *big.Int, epochID uint64) [32]byte {
	buf := make([]byte, 0, 1+4+20+16+8)
	buf = append(buf, leafPrefix)
	buf = binary.BigEndian.AppendUint32(buf, poolIndex)
	buf = append(buf, account[:]...)
	buf = append(buf, int128Bytes(lpBalance)...)
	buf = binary.BigEndian.AppendUint64(buf, epochID)
	return sha256.Sum256(buf)
}

// VerifyProof folds the leaf up through the sibling path and compares the
// result against the root. The path is ordered root-ward: proof[0] is the
// leaf's immediate sibling. An empty path succeeds only for a single-leaf
// tree where the leaf itself is the root.
func VerifyProof(leaf [32]byte, proof [][32]byte, root [32]byte) bool {
	current := leaf
	for _, sibling := range proof {
		current = hashPair(current, sibling)
	}
	return current == root
}

// hashPair combines two nodes with canonical ordering (lexicographically
// smaller input first), so proofs need not encode left/right positions.
func hashPair(a, b [32]byte) [32]byte {
	buf := make([]byte, 0, 1+32+32)
	buf = append(buf, nodePrefix)
	if bytes.Compare(a[:], b[:]) <= 0 {
		buf = append(buf, a[:]...)
		buf = append(buf, b[:]...)
	} else {
		buf = append(buf, b[:]...)
		buf = append(buf, a[:]...)
	}
	return sha256.Sum256(buf)
}

// int128Bytes renders v as a 16-byte big-endian two's complement value.
func int128Bytes(v *big.Int) []byte {
	out := make([]byte, 16)
	if v == nil || v.Sign() == 0 {
		return out
	}
	if v.Sign() > 0 {
		v.FillBytes(out)
		return out
	}
	// Two's complement: 2^128 + v.
	wrapped := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), v)
	wrapped.FillBytes(out)
	return out
}
