// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commitment

import (
	"encoding/hex"
	"testing"

	"github.com/33cn/treasureboard/common/crypto"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hasher(t *testing.T) crypto.Hasher {
	h, err := crypto.GetHasher(crypto.NameSha256)
	require.NoError(t, err)
	return h
}

func TestBuildCommitmentMedium(t *testing.T) {
	h := sha256Hasher(t)
	size, err := ttypes.SizeFromLabel("Medium")
	require.NoError(t, err)
	slots := ttypes.SlotCount(size)
	require.Equal(t, 16, slots)

	c, err := BuildCommitment(h, []int{1, 3, 5, 7, 9, 11, 13, 15}, slots, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 3, 5, 7, 9, 11, 13, 15, 'p', 'w'}, c.CommittedBytes)
	assert.Equal(t, "e0421362529fae0d58fc5cf8d11243e39ad0b6e99bf63e6cfd0d52d6d20ce17b", hex.EncodeToString(c.Digest))
	assert.Equal(t, c.DigestHex(), hex.EncodeToString(c.Digest))
	assert.Equal(t, 8, c.BombCount)
	assert.Empty(t, c.Warnings)

	v := VerifyReveal(h, c.CommittedBytes, c.Digest)
	assert.True(t, v.Valid)
	assert.Equal(t, c.Digest, v.Digest)
}

func TestBuildCommitmentInsufficientBombs(t *testing.T) {
	h := sha256Hasher(t)
	size, err := ttypes.SizeFromLabel("Small")
	require.NoError(t, err)

	_, err = BuildCommitment(h, []int{0}, ttypes.SlotCount(size), []byte("salt"))
	assert.True(t, errors.Is(err, ttypes.ErrInsufficientBombs))

	c, err := BuildCommitment(h, []int{0, 1}, ttypes.SlotCount(size), []byte("salt"))
	require.NoError(t, err)
	assert.Equal(t, "1ccb5cdc81ef4eaacf2ab2c10172f6b5e64f692d2d8e095827f3f4eadfd56513", hex.EncodeToString(c.Digest))

	// more than half is allowed
	_, err = BuildCommitment(h, []int{0, 1, 2}, ttypes.SlotCount(size), []byte("salt"))
	assert.NoError(t, err)
}

func TestBuildCommitmentErrors(t *testing.T) {
	h := sha256Hasher(t)
	testCases := []struct {
		name      string
		bombs     []int
		slotCount int
		err       error
	}{
		{"out of range high", []int{0, 4}, 4, ttypes.ErrOutOfRangeSlot},
		{"out of range negative", []int{-1, 2}, 4, ttypes.ErrOutOfRangeSlot},
		{"out of range big board", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 32}, 32, ttypes.ErrOutOfRangeSlot},
		{"duplicate", []int{1, 1}, 4, ttypes.ErrDuplicateSlot},
		{"empty", nil, 4, ttypes.ErrInsufficientBombs},
		{"zero slots", []int{0}, 0, ttypes.ErrInvalidSize},
	}
	for _, tc := range testCases {
		c, err := BuildCommitment(h, tc.bombs, tc.slotCount, []byte("pw"))
		assert.Nil(t, c, tc.name)
		assert.True(t, errors.Is(err, tc.err), "%s: %v", tc.name, err)
	}
}

func TestBuildCommitmentFallback(t *testing.T) {
	h := sha256Hasher(t)
	c, err := BuildCommitmentWithPolicy(h, []int{3, 99}, 4, []byte("pw"), ttypes.PolicyIndexFallback)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 1, 'p', 'w'}, c.CommittedBytes)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "defaulting to index 1")

	// substituted index collides with an earlier bomb
	_, err = BuildCommitmentWithPolicy(h, []int{1, 99}, 4, []byte("pw"), ttypes.PolicyIndexFallback)
	assert.True(t, errors.Is(err, ttypes.ErrDuplicateSlot))
}

func TestBuildCommitmentDeterministicAndOrdered(t *testing.T) {
	for _, name := range crypto.HasherNames() {
		h, err := crypto.GetHasher(name)
		require.NoError(t, err)

		a, err := BuildCommitment(h, []int{1, 2}, 4, []byte("pw"))
		require.NoError(t, err)
		b, err := BuildCommitment(h, []int{1, 2}, 4, []byte("pw"))
		require.NoError(t, err)
		c, err := BuildCommitment(h, []int{2, 1}, 4, []byte("pw"))
		require.NoError(t, err)

		assert.Equal(t, a.Digest, b.Digest, name)
		assert.NotEqual(t, a.CommittedBytes, c.CommittedBytes, name)
		assert.NotEqual(t, a.Digest, c.Digest, name)
		assert.True(t, VerifyReveal(h, a.CommittedBytes, a.Digest).Valid, name)
	}
}

func TestBuildCommitmentEmptySaltWarns(t *testing.T) {
	c, err := BuildCommitment(sha256Hasher(t), []int{0, 1}, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1}, c.CommittedBytes)
	require.Len(t, c.Warnings, 1)

	_, err = BuildCommitmentWithPolicy(sha256Hasher(t), []int{0, 1}, 4, nil, ttypes.PolicyRequireSalt)
	assert.Equal(t, ttypes.ErrEmptySalt, err)

	// flags combine
	policy := ttypes.PolicyRequireSalt | ttypes.PolicyIndexFallback
	c, err = BuildCommitmentWithPolicy(sha256Hasher(t), []int{0, 9}, 4, []byte("pw"), policy)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 'p', 'w'}, c.CommittedBytes)
}

func TestVerifyReveal(t *testing.T) {
	h := sha256Hasher(t)
	c, err := BuildCommitment(h, []int{0, 1}, 4, []byte("pw"))
	require.NoError(t, err)

	v := VerifyReveal(h, []byte{1, 0, 'p', 'w'}, c.Digest)
	assert.False(t, v.Valid)
	assert.NotEmpty(t, v.Digest)

	v = VerifyReveal(h, c.CommittedBytes, nil)
	assert.False(t, v.Valid)
	assert.Equal(t, c.Digest, v.Digest)

	v, err = VerifyRevealHex(h, c.CommittedBytes, "0x"+c.DigestHex())
	require.NoError(t, err)
	assert.True(t, v.Valid)

	_, err = VerifyRevealHex(h, c.CommittedBytes, "zz")
	assert.True(t, errors.Is(err, ttypes.ErrInvalidDigest))
}

func TestDecodeDigest(t *testing.T) {
	h := sha256Hasher(t)
	digest := h.Sum([]byte("pw"))

	got, err := DecodeDigest(h, hex.EncodeToString(digest))
	require.NoError(t, err)
	assert.Equal(t, digest, got)

	testCases := []string{"", "a", "0xa", hex.EncodeToString(digest)[1:], hex.EncodeToString(digest[:31]), "zz"}
	for _, tc := range testCases {
		_, err := DecodeDigest(h, tc)
		assert.True(t, errors.Is(err, ttypes.ErrInvalidDigest), "%q: %v", tc, err)
	}

	v, err := VerifyRevealHex(h, []byte("pw"), "a")
	assert.Nil(t, v)
	assert.True(t, errors.Is(err, ttypes.ErrInvalidDigest))
}

func TestSolutionFromInts(t *testing.T) {
	s, err := SolutionFromInts([]int{1, 3, 112, 119})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 3, 'p', 'w'}, s)

	_, err = SolutionFromInts([]int{1, 256})
	assert.True(t, errors.Is(err, ttypes.ErrInvalidSolutionByte))
	_, err = SolutionFromInts([]int{-3})
	assert.True(t, errors.Is(err, ttypes.ErrInvalidSolutionByte))
	_, err = SolutionFromInts(nil)
	assert.True(t, errors.Is(err, ttypes.ErrEmptySolution))
}

func TestSettle(t *testing.T) {
	board := &ttypes.GameBoard{
		ID:      1,
		Size:    ttypes.BoardSmall,
		Answers: []int{0, 3},
		Players: []string{"bob", "carol"},
	}
	results, err := Settle(board, []byte{0, 1, 'p', 'w'})
	require.NoError(t, err)
	assert.Equal(t, []ttypes.SlotResult{
		{Slot: 0, Player: "bob", Bomb: true},
		{Slot: 3, Player: "carol", Bomb: false},
	}, results)

	// bomb_count extends the bomb prefix
	board.BombCount = 3
	results, err = Settle(board, []byte{0, 1, 3, 'p'})
	require.NoError(t, err)
	assert.True(t, results[1].Bomb)

	_, err = Settle(board, []byte{0, 1})
	assert.True(t, errors.Is(err, ttypes.ErrInsufficientBombs))
}
