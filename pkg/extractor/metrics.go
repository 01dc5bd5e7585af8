// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsExtraction holds Prometheus metrics for the extraction pipeline.
type metricsExtraction struct {
	once sync.Once

	filesParsed prometheus.Counter
	parseErrors prometheus.Counter
	elements    prometheus.Counter

	referencesTotal      prometheus.Counter
	referencesUnresolved prometheus.Counter

	parseDuration   prometheus.Histogram
	resolveDuration prometheus.Histogram
}

var extMetrics metricsExtraction

func (m *metricsExtraction) init() {
	m.once.Do(func() {
		m.filesParsed = prometheus.NewCounter(prometheus.CounterOpts{Name: "rustmap_ext_files_parsed_total", Help: "Source files parsed successfully"})
		m.parseErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "rustmap_ext_parse_errors_total", Help: "Source files that failed to parse"})
		m.elements = prometheus.NewCounter(prometheus.CounterOpts{Name: "rustmap_ext_elements_total", Help: "Code elements extracted"})

		m.referencesTotal = prometheus.NewCounter(prometheus.CounterOpts{Name: "rustmap_ext_references_total", Help: "Raw references recorded"})
		m.referencesUnresolved = prometheus.NewCounter(prometheus.CounterOpts{Name: "rustmap_ext_references_unresolved_total", Help: "References left unresolved after resolution"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "rustmap_ext_parse_seconds", Help: "Total parse phase duration", Buckets: buckets})
		m.resolveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "rustmap_ext_resolve_seconds", Help: "Cross-reference resolution duration", Buckets: buckets})

		prometheus.MustRegister(
			m.filesParsed, m.parseErrors, m.elements,
			m.referencesTotal, m.referencesUnresolved,
			m.parseDuration, m.resolveDuration,
		)
	})
}

// record helpers - used by the pipeline for metrics tracking
func recordFileParsed() { extMetrics.init(); extMetrics.filesParsed.Inc() }
func recordParseError() { extMetrics.init(); extMetrics.parseErrors.Inc() }

func recordElements(n int) {
	extMetrics.init()
	extMetrics.elements.Add(float64(n))
}

func recordReferences(total, unresolved int) {
	extMetrics.init()
	extMetrics.referencesTotal.Add(float64(total))
	extMetrics.referencesUnresolved.Add(float64(unresolved))
}

func observeParseDuration(d time.Duration) {
	extMetrics.init()
	extMetrics.parseDuration.Observe(d.Seconds())
}

func observeResolveDuration(d time.Duration) {
	extMetrics.init()
	extMetrics.resolveDuration.Observe(d.Seconds())
}
