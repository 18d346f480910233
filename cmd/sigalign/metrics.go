// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shenwei356/sigalign"
)

// alignMetrics are the counters of an align run.
type alignMetrics struct {
	registry *prometheus.Registry

	queries            *prometheus.CounterVec
	alignments         prometheus.Counter
	alignmentsPerQuery prometheus.Histogram
	queryBases         prometheus.Counter
}

func newAlignMetrics() *alignMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &alignMetrics{
		registry: reg,
		// Labels: status (matched, unmatched, invalid)
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sigalign",
			Name:      "queries_total",
			Help:      "Total queries processed",
		}, []string{"status"}),
		alignments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sigalign",
			Name:      "alignments_total",
			Help:      "Total alignments reported",
		}),
		alignmentsPerQuery: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sigalign",
			Name:      "alignments_per_query",
			Help:      "Distribution of alignments of a query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 1000},
		}),
		queryBases: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sigalign",
			Name:      "query_bases_total",
			Help:      "Total bases of processed queries",
		}),
	}
}

func (m *alignMetrics) observe(r *sigalign.QueryResult) {
	m.queryBases.Add(float64(len(r.Query.Seq)))
	if r.Err != nil {
		m.queries.WithLabelValues("invalid").Inc()
		return
	}
	n := r.Count()
	if n > 0 {
		m.queries.WithLabelValues("matched").Inc()
	} else {
		m.queries.WithLabelValues("unmatched").Inc()
	}
	m.alignments.Add(float64(n))
	m.alignmentsPerQuery.Observe(float64(n))
}

// serve exposes the metrics at /metrics until the returned function is called.
func (m *alignMetrics) serve(addr string) func() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "error", err)
		}
	}()
	logger.Info("metrics served", "addr", addr)

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
