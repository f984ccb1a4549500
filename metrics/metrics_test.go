// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/33cn/treasureboard/types"
	log15 "github.com/inconshreveable/log15"
	go_metrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	r := go_metrics.NewRegistry()
	go_metrics.GetOrRegisterCounter("treasure.rpc.play.errors", r).Inc(3)
	go_metrics.GetOrRegisterTimer("treasure.rpc.play", r).Update(2 * time.Millisecond)

	var buf bytes.Buffer
	l := log15.New()
	l.SetHandler(log15.StreamHandler(&buf, log15.LogfmtFormat()))
	Report(r, l)

	out := buf.String()
	assert.Contains(t, out, "name=treasure.rpc.play.errors count=3")
	assert.Contains(t, out, "name=treasure.rpc.play count=1")
}

func TestStartMetricsDisabled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartMetrics(ctx, &types.Metrics{})
}
