// Copyright 2026 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sim

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scionproto/lpmsim/pkg/metrics"
	"github.com/scionproto/lpmsim/pkg/private/prom"
	"github.com/scionproto/lpmsim/pkg/routing"
)

const resultForwarded = "forwarded"

// Metrics are the simulator metrics.
type Metrics struct {
	// Packets counts packet events per node, result and drop reason.
	Packets *prometheus.CounterVec
	// Routing are the metrics of the node routing tables.
	Routing *routing.Metrics
}

// NewMetrics creates and registers the simulator metrics.
func NewMetrics(f metrics.Factory) *Metrics {
	return &Metrics{
		Packets: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lpm_sim_packets_total",
				Help: "Total number of packets handled by simulated nodes.",
			},
			[]string{prom.LabelNode, prom.LabelResult, prom.LabelReason},
		),
		Routing: routing.NewMetrics(f),
	}
}

func (m *Metrics) OnPacket(ev PacketEvent) {
	if m == nil {
		return
	}
	result, reason := resultForwarded, routing.ReasonNone
	switch {
	case ev.Delivered:
		result = prom.Delivered
	case !ev.Decision.Forwarded():
		result, reason = prom.Dropped, ev.Decision.Reason
	}
	m.Packets.WithLabelValues(ev.Node, result, reason.String()).Inc()
}
