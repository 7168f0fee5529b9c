package lpstaking

import (
	"bytes"
	"math/big"
	"testing"
)

// buildTree folds the leaves into a canonical-ordering Merkle tree and
// returns the root plus a root-ward proof for every leaf. Odd nodes are
// promoted to the next level without a sibling.
func buildTree(leaves [][32]byte) ([32]byte, [][][32]byte) {
	if len(leaves) == 0 {
		return [32]byte{}, nil
	}
	proofs := make([][][32]byte, len(leaves))
	positions := make([]int, len(leaves))
	for i := range leaves {
		positions[i] = i
	}
	level := append([][32]byte(nil), leaves...)
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			for leaf, pos := range positions {
				if pos == i {
					proofs[leaf] = append(proofs[leaf], level[i+1])
				} else if pos == i+1 {
					proofs[leaf] = append(proofs[leaf], level[i])
				}
			}
			next = append(next, hashPair(level[i], level[i+1]))
		}
		for leaf, pos := range positions {
			positions[leaf] = pos / 2
		}
		level = next
	}
	return level[0], proofs
}

func testAccount(fill byte) [20]byte {
	var addr [20]byte
	copy(addr[:], bytes.Repeat([]byte{fill}, 20))
	return addr
}

func TestVerifyProofRoundTrip(t *testing.T) {
	leaves := make([][32]byte, 7)
	for i := range leaves {
		leaves[i] = ComputeLeaf(0, testAccount(byte(i+1)), big.NewInt(int64((i+1)*1000)), 1)
	}
	root, proofs := buildTree(leaves)
	for i, leaf := range leaves {
		if !VerifyProof(leaf, proofs[i], root) {
			t.Fatalf("proof for leaf %d did not verify", i)
		}
	}
}

func TestVerifyProofRejectsTampering(t *testing.T) {
	leaves := make([][32]byte, 4)
	for i := range leaves {
		leaves[i] = ComputeLeaf(2, testAccount(byte(i+1)), big.NewInt(int64(500+i)), 3)
	}
	root, proofs := buildTree(leaves)

	tamperedLeaf := leaves[0]
	tamperedLeaf[5] ^= 0x01
	if VerifyProof(tamperedLeaf, proofs[0], root) {
		t.Fatalf("tampered leaf verified")
	}

	tamperedProof := append([][32]byte(nil), proofs[1]...)
	tamperedProof[0][31] ^= 0x80
	if VerifyProof(leaves[1], tamperedProof, root) {
		t.Fatalf("tampered proof verified")
	}

	tamperedRoot := root
	tamperedRoot[0] ^= 0xFF
	if VerifyProof(leaves[2], proofs[2], tamperedRoot) {
		t.Fatalf("tampered root verified")
	}
}

func TestVerifyProofEmptyPath(t *testing.T) {
	leaf := ComputeLeaf(0, testAccount(0xAB), big.NewInt(42), 1)
	if !VerifyProof(leaf, nil, leaf) {
		t.Fatalf("single-leaf tree should verify against itself")
	}
	other := ComputeLeaf(0, testAccount(0xAC), big.NewInt(42), 1)
	if VerifyProof(leaf, nil, other) {
		t.Fatalf("empty proof verified against a different root")
	}
}

func TestComputeLeafBindsAllFields(t *testing.T) {
	base := ComputeLeaf(1, testAccount(0x11), big.NewInt(1000), 5)
	if base == ComputeLeaf(2, testAccount(0x11), big.NewInt(1000), 5) {
		t.Fatalf("leaf ignores pool index")
	}
	if base == ComputeLeaf(1, testAccount(0x12), big.NewInt(1000), 5) {
		t.Fatalf("leaf ignores account")
	}
	if base == ComputeLeaf(1, testAccount(0x11), big.NewInt(1001), 5) {
		t.Fatalf("leaf ignores balance")
	}
	if base == ComputeLeaf(1, testAccount(0x11), big.NewInt(1000), 6) {
		t.Fatalf("leaf ignores epoch")
	}
}

func TestLeafAndNodeDomainsAreSeparated(t *testing.T) {
	// A node hash over (leaf, sibling) must not be reproducible as a leaf,
	// even when an attacker fully controls the leaf payload bytes.
	a := ComputeLeaf(0, testAccount(0x01), big.NewInt(1), 1)
	b := ComputeLeaf(0, testAccount(0x02), big.NewInt(2), 1)
	node := hashPair(a, b)
	if node == a || node == b {
		t.Fatalf("internal node collided with a leaf")
	}
	if hashPair(a, b) != hashPair(b, a) {
		t.Fatalf("canonical ordering is not symmetric")
	}
}

func TestInt128Bytes(t *testing.T) {
	cases := []struct {
		value *big.Int
		first byte
		last  byte
	}{
		{big.NewInt(0), 0x00, 0x00},
		{big.NewInt(1), 0x00, 0x01},
		{big.NewInt(256), 0x00, 0x00},
		{big.NewInt(-1), 0xFF, 0xFF},
	}
	for _, tc := range cases {
		encoded := int128Bytes(tc.value)
		if len(encoded) != 16 {
			t.Fatalf("encoding of %s is %d bytes", tc.value, len(encoded))
		}
		if encoded[0] != tc.first || encoded[15] != tc.last {
			t.Fatalf("unexpected encoding of %s: % x", tc.value, encoded)
		}
	}
	if !fitsInt128(maxInt128) || fitsInt128(new(big.Int).Add(maxInt128, big.NewInt(1))) {
		t.Fatalf("int128 range check is off by one")
	}
}
