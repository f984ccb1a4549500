// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenPolicy decides what happens to a malformed input token
type TokenPolicy int32

// Has reports whether flag is set
func (p TokenPolicy) Has(flag TokenPolicy) bool {
	return p&flag != 0
}

// ParseInt parses one decimal token
func ParseInt(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Token: token, Err: ErrInvalidToken}
	}
	return n, nil
}

// ParseID parses a board id
func ParseID(token string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return 0, &ParseError{Token: token, Err: ErrInvalidToken}
	}
	return id, nil
}

// ParseSlots parses whitespace separated decimal slot indices. Range checks
// need the board size and are left to the caller.
func ParseSlots(input string, policy TokenPolicy) ([]int, []string, error) {
	tokens := strings.Fields(input)
	slots := make([]int, 0, len(tokens))
	var warnings []string
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			if !policy.Has(PolicyIndexFallback) {
				return nil, nil, &ParseError{Position: i, Token: tok, Err: ErrInvalidToken}
			}
			warnings = append(warnings, fmt.Sprintf("invalid number %q at %d, defaulting to index", tok, i))
			n = i
		}
		slots = append(slots, n)
	}
	return slots, warnings, nil
}

// ParseSolution parses whitespace separated decimal bytes. Any token that is
// not a number in [0,255] fails with ErrInvalidSolutionByte.
func ParseSolution(input string, policy TokenPolicy) ([]byte, []string, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil, nil, ErrEmptySolution
	}
	solution := make([]byte, 0, len(tokens))
	var warnings []string
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 || n > MaxSlot {
			if !policy.Has(PolicyIndexFallback) || i > MaxSlot {
				return nil, nil, &ParseError{Position: i, Token: tok, Err: ErrInvalidSolutionByte}
			}
			warnings = append(warnings, fmt.Sprintf("invalid byte %q at %d, defaulting to index", tok, i))
			n = i
		}
		solution = append(solution, byte(n))
	}
	return solution, warnings, nil
}

// FormatSolution renders bytes the way ParseSolution reads them
func FormatSolution(solution []byte) string {
	parts := make([]string, len(solution))
	for i, b := range solution {
		parts[i] = strconv.Itoa(int(b))
	}
	return strings.Join(parts, " ")
}
