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

package prom_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/scionproto/lpmsim/pkg/private/prom"
)

func TestSafeRegisterCounterVec(t *testing.T) {
	newVec := func() *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prom_test_safe_register_total",
			Help: "Test.",
		}, []string{prom.LabelResult})
	}
	first := prom.SafeRegisterCounterVec(newVec())
	second := prom.SafeRegisterCounterVec(newVec())
	assert.Same(t, first, second)
	prometheus.Unregister(first)
}
