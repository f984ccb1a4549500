// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package common 编码与摘要相关的通用函数
package common

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/mr-tron/base58/base58"
)

//ToHex []byte -> hex, with 0x prefix
func ToHex(b []byte) string {
	hex := Bytes2Hex(b)
	if len(hex) == 0 {
		return ""
	}
	return "0x" + hex
}

// ErrOddLengthHex a hex string must encode whole bytes
var ErrOddLengthHex = errors.New("ErrOddLengthHex")

//FromHex hex -> []byte, the 0x prefix is optional
func FromHex(s string) ([]byte, error) {
	if HasHexPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		return nil, ErrOddLengthHex
	}
	return Hex2Bytes(s)
}

// CopyBytes Returns an exact copy of the provided bytes
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return
}

//HasHexPrefix 是否包含0x前缀
func HasHexPrefix(str string) bool {
	l := len(str)
	return l >= 2 && (str[0:2] == "0x" || str[0:2] == "0X")
}

//Bytes2Hex []byte -> hex
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

//Hex2Bytes hex -> []byte
func Hex2Bytes(str string) ([]byte, error) {
	return hex.DecodeString(str)
}

//Sha256 加密
func Sha256(b []byte) []byte {
	data := sha256.Sum256(b)
	return data[:]
}

//ToBase58 ledger style encoding for transaction hashes
func ToBase58(b []byte) string {
	return base58.Encode(b)
}

//FromBase58 base58 -> []byte
func FromBase58(s string) ([]byte, error) {
	return base58.Decode(s)
}
