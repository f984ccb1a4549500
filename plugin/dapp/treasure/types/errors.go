// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
)

// treasure errors
var (
	ErrInvalidSize         = errors.New("ErrInvalidSize")
	ErrInsufficientBombs   = errors.New("ErrInsufficientBombs")
	ErrOutOfRangeSlot      = errors.New("ErrOutOfRangeSlot")
	ErrInvalidSolutionByte = errors.New("ErrInvalidSolutionByte")
	ErrRemoteCallFailed    = errors.New("ErrRemoteCallFailed")
	ErrDuplicateSlot       = errors.New("ErrDuplicateSlot")
	ErrInvalidToken        = errors.New("ErrInvalidToken")
	ErrEmptySolution       = errors.New("ErrEmptySolution")
	ErrEmptySalt           = errors.New("ErrEmptySalt")
	ErrGameNotFound        = errors.New("ErrGameNotFound")
	ErrInvalidDigest       = errors.New("ErrInvalidDigest")
	ErrNoAccount           = errors.New("ErrNoAccount")
)

// RemoteError is a failure reported by the remote service or its transport.
// The message is kept exactly as received.
type RemoteError struct {
	Method  string
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrRemoteCallFailed) hold
func (e *RemoteError) Unwrap() error {
	return ErrRemoteCallFailed
}

// ParseError is the typed result of a rejected input token
type ParseError struct {
	Position int
	Token    string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("token %d %q: %v", e.Position, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
