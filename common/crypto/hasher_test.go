// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherVectors(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{NameSha256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{NameSha3, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{NameKeccak256, "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
		{NameBlake2b, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
		{NameSm3, "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0"},
	}
	for _, tc := range testCases {
		h, err := GetHasher(tc.name)
		require.NoError(t, err, tc.name)
		sum := h.Sum([]byte("abc"))
		assert.Equal(t, tc.want, hex.EncodeToString(sum), tc.name)
		assert.Len(t, sum, h.Size(), tc.name)
	}
}

func TestMiMCHasher(t *testing.T) {
	h, err := GetHasher(NameMiMC)
	require.NoError(t, err)

	a := h.Sum([]byte{1, 3, 5, 'p', 'w'})
	b := h.Sum([]byte{1, 3, 5, 'p', 'w'})
	c := h.Sum([]byte{3, 1, 5, 'p', 'w'})
	assert.Len(t, a, h.Size())
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHasherOrderSensitive(t *testing.T) {
	for _, name := range HasherNames() {
		h, err := GetHasher(name)
		require.NoError(t, err)
		assert.NotEqual(t, h.Sum([]byte{0, 1}), h.Sum([]byte{1, 0}), name)
	}
}

func TestGetHasherUnknown(t *testing.T) {
	_, err := GetHasher("md5")
	assert.Error(t, err)
	assert.Equal(t, []string{"blake2b", "keccak256", "mimc", "sha256", "sha3", "sm3"}, HasherNames())
}

func TestRegisterHasherTwice(t *testing.T) {
	assert.Panics(t, func() { RegisterHasher(sha256Hasher{}) })
	assert.Panics(t, func() { RegisterHasher(nil) })
}
