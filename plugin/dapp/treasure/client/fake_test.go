// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"encoding/json"
)

type recordedCall struct {
	Method string
	Params interface{}
}

// fakeCaller records every call and answers from canned results
type fakeCaller struct {
	calls   []recordedCall
	results map[string]interface{}
	err     error
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{results: make(map[string]interface{})}
}

func (f *fakeCaller) Call(method string, params, result interface{}) error {
	f.calls = append(f.calls, recordedCall{Method: method, Params: params})
	if f.err != nil {
		return f.err
	}
	res, ok := f.results[method]
	if !ok {
		res = map[string]interface{}{"tx_hash": "fake", "method": method}
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, result)
}
