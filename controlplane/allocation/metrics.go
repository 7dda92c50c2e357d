/*
 mcsalloc, allocates gdxsv match servers on GCE and Hetzner Cloud.
 Copyright (C) 2025 The gdxsv mcsalloc authors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package allocation

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	allocations *prometheus.CounterVec
	attempts    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	deletions   *prometheus.CounterVec
}

// NewMetrics registers the allocation metrics with reg. A nil reg creates
// unregistered collectors, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcsalloc",
			Name:      "allocations_total",
			Help:      "Allocation requests by region and outcome.",
		}, []string{"region", "outcome"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcsalloc",
			Name:      "candidate_attempts_total",
			Help:      "Resume and create attempts by stage and result.",
		}, []string{"stage", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mcsalloc",
			Name:      "allocation_duration_seconds",
			Help:      "Time taken to serve an allocation request.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"outcome"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcsalloc",
			Name:      "deletions_total",
			Help:      "Instance deletions issued by delete-all, by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.allocations, m.attempts, m.duration, m.deletions)
	}

	return m
}

func (m *Metrics) observeAllocation(region string, outcome Outcome, seconds float64) {
	m.allocations.WithLabelValues(region, string(outcome)).Inc()
	m.duration.WithLabelValues(string(outcome)).Observe(seconds)
}

func (m *Metrics) observeAttempt(s stage, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.attempts.WithLabelValues(string(s), result).Inc()
}

func (m *Metrics) observeDeletion(err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.deletions.WithLabelValues(result).Inc()
}
