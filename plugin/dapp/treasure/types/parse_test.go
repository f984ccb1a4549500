// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlots(t *testing.T) {
	slots, warnings, err := ParseSlots(" 1 3\t5  7\n9 ", PolicyStrict)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []int{1, 3, 5, 7, 9}, slots)

	slots, _, err = ParseSlots("", PolicyStrict)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, _, err = ParseSlots("1 x 3", PolicyStrict)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Position)
	assert.Equal(t, "x", perr.Token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	slots, warnings, err = ParseSlots("1 x 3", PolicyIndexFallback)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 3}, slots)
	assert.Len(t, warnings, 1)
}

func TestParseSolution(t *testing.T) {
	testCases := []struct {
		input string
		want  []byte
		err   error
	}{
		{"1 3 5 7 9 11 13 15 112 119", []byte{1, 3, 5, 7, 9, 11, 13, 15, 'p', 'w'}, nil},
		{"0 255", []byte{0, 255}, nil},
		{"0 256", nil, ErrInvalidSolutionByte},
		{"-1", nil, ErrInvalidSolutionByte},
		{"1 two", nil, ErrInvalidSolutionByte},
		{"1.5", nil, ErrInvalidSolutionByte},
		{"   ", nil, ErrEmptySolution},
	}
	for _, tc := range testCases {
		solution, _, err := ParseSolution(tc.input, PolicyStrict)
		if tc.err != nil {
			assert.True(t, errors.Is(err, tc.err), tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, solution, tc.input)
	}
}

func TestParseSolutionFallback(t *testing.T) {
	solution, warnings, err := ParseSolution("7 300 9", PolicyIndexFallback)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 1, 9}, solution)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "defaulting to index")
}

func TestParseIDAndInt(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = ParseID("-1")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	n, err := ParseInt("15")
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	_, err = ParseInt("0x0f")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestFormatSolution(t *testing.T) {
	assert.Equal(t, "1 3 112 119", FormatSolution([]byte{1, 3, 'p', 'w'}))
	solution, _, err := ParseSolution(FormatSolution([]byte{0, 200, 255}), PolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 200, 255}, solution)
}
