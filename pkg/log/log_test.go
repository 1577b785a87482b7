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

package log_test

import (
	"bytes"
	"context"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/log/testlog"
)

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg log.Config
	cfg.Sample(&sample, nil, nil)

	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().
		Decode(&cfg)
	require.NoError(t, err)
	cfg.InitDefaults()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, log.DefaultConsoleLevel, cfg.Console.Level)
	assert.Equal(t, "human", cfg.Console.Format)
}

func TestConfigValidate(t *testing.T) {
	testCases := map[string]struct {
		console   log.ConsoleConfig
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			console:   log.ConsoleConfig{},
			assertErr: assert.NoError,
		},
		"bad level": {
			console:   log.ConsoleConfig{Level: "verbose"},
			assertErr: assert.Error,
		},
		"bad format": {
			console:   log.ConsoleConfig{Format: "xml"},
			assertErr: assert.Error,
		},
		"bad stacktrace level": {
			console:   log.ConsoleConfig{StacktraceLevel: "crit"},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := log.Config{Console: tc.console}
			cfg.InitDefaults()
			tc.assertErr(t, cfg.Validate())
		})
	}
}

func TestSetupEntriesCounter(t *testing.T) {
	defer log.Discard()
	info := prometheus.NewCounter(prometheus.CounterOpts{Name: "info_total"})
	debug := prometheus.NewCounter(prometheus.CounterOpts{Name: "debug_total"})
	cfg := log.Config{Console: log.ConsoleConfig{Level: "info", Format: "json"}}
	require.NoError(t, log.Setup(cfg, log.WithEntriesCounter(log.EntriesCounter{
		Info:  info,
		Debug: debug,
	})))

	log.Info("counted")
	log.Debug("filtered by level")
	assert.Equal(t, float64(1), testutil.ToFloat64(info))
	assert.Equal(t, float64(0), testutil.ToFloat64(debug))
}

func TestCtx(t *testing.T) {
	logger, logs := testlog.NewObserved()
	ctx := log.CtxWith(context.Background(), logger)
	ctx, labeled := log.WithLabels(ctx, "node", 3)
	assert.Equal(t, labeled, log.FromCtx(ctx))

	log.FromCtx(ctx).Info("hello", "prefix", "10.0.0.0/8")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, int64(3), entry.ContextMap()["node"])
	assert.Equal(t, "10.0.0.0/8", entry.ContextMap()["prefix"])
}

func TestFromCtxWithoutLogger(t *testing.T) {
	assert.NotNil(t, log.FromCtx(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly.
	assert.NotNil(t, log.FromCtx(nil))
}
