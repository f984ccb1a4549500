// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现JSON-RPC 2.0 客户端
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	log "github.com/33cn/treasureboard/common/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
)

var jlog = log.New("module", "rpc.jsonclient")

// JSONRPCVersion of every request
const JSONRPCVersion = "2.0"

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	client *http.Client
}

type clientRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type clientResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      string           `json:"id"`
	Result  *json.RawMessage `json:"result"`
	Error   *RPCError        `json:"error"`
}

// RPCError is the error object of a JSON-RPC response
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// NewJSONClient produce a json object
func NewJSONClient(laddr string) (*JSONClient, error) {
	return NewJSONClientWithTimeout(laddr, 0)
}

// NewJSONClientWithTimeout a zero timeout waits forever
func NewJSONClientWithTimeout(laddr string, timeout time.Duration) (*JSONClient, error) {
	u, err := url.Parse(laddr)
	if err != nil {
		return nil, errors.Wrapf(err, "NewJSONClient %s", laddr)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("NewJSONClient: unsupported scheme in %q", laddr)
	}
	return &JSONClient{url: laddr, client: &http.Client{Timeout: timeout}}, nil
}

// URL the client posts to
func (client *JSONClient) URL() string {
	return client.url
}

// Call issues one request and waits for its single response. Server side
// errors come back as *RPCError with the message untouched.
func (client *JSONClient) Call(method string, params, resp interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.GetOrRegisterTimer("jsonclient."+method, nil).UpdateSince(start)
		if err != nil {
			metrics.GetOrRegisterCounter("jsonclient."+method+".errors", nil).Inc(1)
		}
	}()

	req := &clientRequest{JSONRPC: JSONRPCVersion, ID: uuid.New().String(), Method: method, Params: params}
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrapf(err, "Call %s marshal", method)
	}
	jlog.Debug("Call", "method", method, "id", req.ID)

	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrapf(err, "Call %s", method)
	}
	defer postresp.Body.Close()
	b, err := ioutil.ReadAll(postresp.Body)
	if err != nil {
		return errors.Wrapf(err, "Call %s read", method)
	}
	if postresp.StatusCode != http.StatusOK {
		return &RPCError{Code: postresp.StatusCode, Message: fmt.Sprintf("%s: %s", postresp.Status, bytes.TrimSpace(b))}
	}

	cresp := &clientResponse{}
	if err = json.Unmarshal(b, cresp); err != nil {
		return errors.Wrapf(err, "Call %s decode", method)
	}
	if cresp.ID != req.ID {
		return errors.Errorf("Call %s: response id %q does not match request %q", method, cresp.ID, req.ID)
	}
	if cresp.Error != nil {
		return cresp.Error
	}
	if cresp.Result == nil {
		return errors.Errorf("Call %s: empty result", method)
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(*cresp.Result, resp)
}
