// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	data := []byte{0x01, 0xab, 0xff}
	assert.Equal(t, "0x01abff", ToHex(data))
	assert.Equal(t, "", ToHex(nil))

	testCases := []string{"0x01abff", "0X01ABFF", "01abff"}
	for _, tc := range testCases {
		b, err := FromHex(tc)
		require.NoError(t, err, tc)
		assert.Equal(t, data, b, tc)
	}

	b, err := FromHex("")
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)

	for _, tc := range []string{"a", "0xa", "1abff"} {
		_, err = FromHex(tc)
		assert.Equal(t, ErrOddLengthHex, err, tc)
	}
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}

func TestBase58(t *testing.T) {
	h := Sha256([]byte("treasure"))
	s := ToBase58(h)
	back, err := FromBase58(s)
	require.NoError(t, err)
	assert.Equal(t, h, back)

	_, err = FromBase58("0OIl")
	assert.Error(t, err)
}
