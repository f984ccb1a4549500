// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 周期性输出 go-metrics 统计数据
package metrics

import (
	"context"
	"time"

	chainlog "github.com/33cn/treasureboard/common/log"
	"github.com/33cn/treasureboard/types"
	log15 "github.com/inconshreveable/log15"
	go_metrics "github.com/rcrowley/go-metrics"
)

var log = chainlog.New("module", "metrics")

//StartMetrics 根据配置文件相关参数启动
func StartMetrics(ctx context.Context, cfg *types.Metrics) {
	if !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return
	}
	interval := time.Duration(cfg.LogIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				Report(go_metrics.DefaultRegistry, log)
				return
			case <-ticker.C:
				Report(go_metrics.DefaultRegistry, log)
			}
		}
	}()
}

// Report logs one record per registered metric
func Report(r go_metrics.Registry, l log15.Logger) {
	r.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Counter:
			l.Info("metric", "name", name, "count", m.Count())
		case go_metrics.Gauge:
			l.Info("metric", "name", name, "value", m.Value())
		case go_metrics.Meter:
			s := m.Snapshot()
			l.Info("metric", "name", name, "count", s.Count(), "rate1", s.Rate1())
		case go_metrics.Timer:
			s := m.Snapshot()
			ps := s.Percentiles([]float64{0.5, 0.99})
			l.Info("metric", "name", name, "count", s.Count(),
				"mean", time.Duration(s.Mean()), "p50", time.Duration(ps[0]), "p99", time.Duration(ps[1]))
		}
	})
}
