/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package merkle

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "frontier"
const subSystem = "merkle"

var (
	insertTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "insert_total",
			Help:      "Number of elements appended to trees.",
		},
	)
	forgetTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "forget_total",
			Help:      "Number of subtrees converted into forgotten placeholders.",
		},
	)
	lookupTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "lookup_total",
			Help:      "Number of lookup queries.",
		},
	)
	verifyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "verify_total",
			Help:      "Number of proof verifications.",
		},
	)

	metricsList = []prometheus.Collector{
		insertTotal,
		forgetTotal,
		lookupTotal,
		verifyTotal,
	}

	registerMetrics sync.Once
)

// RegisterMetrics registers the package collectors in the given registry.
func RegisterMetrics(r *prometheus.Registry) {
	registerMetrics.Do(
		func() {
			for _, metric := range metricsList {
				r.MustRegister(metric)
			}
		},
	)
}
