// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc serves the treasure board contract over JSON-RPC 2.0
package rpc

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	log "github.com/33cn/treasureboard/common/log"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/executor"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/33cn/treasureboard/types"
	"github.com/kevinms/leakybucket-go"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

var rlog = log.New("module", "rpc.treasure")

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeContractError  = -32000
)

const maxBodySize = 1 << 20

type serverRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type serverError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type serverResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *serverError    `json:"error,omitempty"`
}

// Server dispatches contract calls to a ledger
type Server struct {
	cfg       types.Node
	ledger    *executor.Ledger
	ipLimiter *leakybucket.Collector
	handler   http.Handler
}

// NewServer wraps the ledger with CORS and a per ip rate limit
func NewServer(cfg types.Node, ledger *executor.Ledger) *Server {
	s := &Server{cfg: cfg, ledger: ledger}
	if cfg.RateLimit > 0 {
		s.ipLimiter = leakybucket.NewCollector(cfg.RateLimit, cfg.RateBurst, true)
	}
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Whitelist,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(http.HandlerFunc(s.serveHTTP))
	return s
}

// Handler is the full http stack, tests mount it on httptest
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the bind address until ctx is done
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.JrpcBindAddr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.cfg.JrpcBindAddr)
	}
	return s.Serve(ctx, l)
}

// Serve on l until ctx is done, then shut down gracefully
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rlog.Info("jrpc listen", "addr", l.Addr().String())
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func (s *Server) allow(remoteAddr string) bool {
	if s.ipLimiter == nil {
		return true
	}
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}
	if s.ipLimiter.Remaining(ip) <= 0 {
		return false
	}
	s.ipLimiter.Add(ip, 1)
	return true
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r.RemoteAddr) {
		metrics.GetOrRegisterCounter("treasure.rpc.limited", nil).Inc(1)
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	var req serverRequest
	resp := &serverResponse{JSONRPC: "2.0"}
	if err := json.Unmarshal(body, &req); err != nil {
		resp.ID = json.RawMessage("null")
		resp.Error = &serverError{Code: CodeParseError, Message: err.Error()}
	} else {
		resp.ID = req.ID
		resp.Result, resp.Error = s.dispatch(&req)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		rlog.Error("serveHTTP encode", "err", err)
	}
}

var contractMethods = map[string]bool{
	ttypes.FuncNameGames:   true,
	ttypes.FuncNameNewGame: true,
	ttypes.FuncNamePlay:    true,
	ttypes.FuncNameReveal:  true,
}

// metricName keeps the registry bounded, every other method shares one name
func metricName(method string) string {
	if contractMethods[method] {
		return "treasure.rpc." + method
	}
	return "treasure.rpc.unknown"
}

func (s *Server) dispatch(req *serverRequest) (result interface{}, rerr *serverError) {
	start := time.Now()
	defer func() {
		name := metricName(req.Method)
		metrics.GetOrRegisterTimer(name, nil).UpdateSince(start)
		if rerr != nil {
			metrics.GetOrRegisterCounter(name+".errors", nil).Inc(1)
			rlog.Debug("dispatch", "method", req.Method, "code", rerr.Code, "err", rerr.Message)
		}
	}()
	if req.JSONRPC != "2.0" || req.Method == "" {
		return nil, &serverError{Code: CodeInvalidRequest, Message: "invalid request"}
	}

	switch req.Method {
	case ttypes.FuncNameGames:
		var view ttypes.ViewCall
		if err := decodeParams(req.Params, &view); err != nil {
			return nil, err
		}
		if err := s.checkContract(view.ContractID); err != nil {
			return nil, err
		}
		games, err := s.ledger.Games()
		if err != nil {
			return nil, contractError(err)
		}
		return games, nil
	case ttypes.FuncNameNewGame:
		var args ttypes.NewGameArgs
		call, rerr := s.functionCall(req, &args)
		if rerr != nil {
			return nil, rerr
		}
		return wrap(s.ledger.NewGame(call, &args))
	case ttypes.FuncNamePlay:
		var args ttypes.PlayArgs
		call, rerr := s.functionCall(req, &args)
		if rerr != nil {
			return nil, rerr
		}
		return wrap(s.ledger.Play(call, &args))
	case ttypes.FuncNameReveal:
		var args ttypes.RevealArgs
		call, rerr := s.functionCall(req, &args)
		if rerr != nil {
			return nil, rerr
		}
		return wrap(s.ledger.Reveal(call, &args))
	}
	return nil, &serverError{Code: CodeMethodNotFound, Message: "method not found: " + req.Method}
}

func (s *Server) functionCall(req *serverRequest, args interface{}) (*executor.Call, *serverError) {
	var fc ttypes.FunctionCall
	if err := decodeParams(req.Params, &fc); err != nil {
		return nil, err
	}
	if err := s.checkContract(fc.ContractID); err != nil {
		return nil, err
	}
	if err := decodeParams(fc.Args, args); err != nil {
		return nil, err
	}
	call, err := executor.NewCall(req.Method, &fc)
	if err != nil {
		return nil, contractError(err)
	}
	return call, nil
}

func (s *Server) checkContract(id string) *serverError {
	if s.cfg.ContractID != "" && id != s.cfg.ContractID {
		return &serverError{Code: CodeContractError, Message: "Contract " + id + " does not exist"}
	}
	return nil
}

func decodeParams(raw json.RawMessage, v interface{}) *serverError {
	if len(raw) == 0 {
		return &serverError{Code: CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &serverError{Code: CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func contractError(err error) *serverError {
	return &serverError{Code: CodeContractError, Message: err.Error()}
}

func wrap(out *ttypes.TransactionOutcome, err error) (interface{}, *serverError) {
	if err != nil {
		return nil, contractError(err)
	}
	return out, nil
}
