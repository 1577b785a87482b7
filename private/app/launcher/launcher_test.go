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

package launcher_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/private/app/command"
	"github.com/scionproto/lpmsim/private/app/launcher"
	"github.com/scionproto/lpmsim/private/config"
)

type testConfig struct {
	Log  log.Config `toml:"log,omitempty"`
	Name string     `toml:"name,omitempty"`
}

func (c *testConfig) InitDefaults() {
	config.InitAll(&c.Log)
	if c.Name == "" {
		c.Name = "default"
	}
}

func (c *testConfig) Validate() error {
	if c.Name == "invalid" {
		return serrors.New("invalid name")
	}
	return config.ValidateAll(&c.Log)
}

func (c *testConfig) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, "name = \"sample\"\n")
	config.WriteSample(dst, path, ctx, &c.Log)
}

func writeConfig(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestApplicationMain(t *testing.T) {
	defer log.Discard()
	testCases := map[string]struct {
		config    string
		wantName  string
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			config:    "",
			wantName:  "default",
			assertErr: assert.NoError,
		},
		"custom": {
			config:    "name = \"lpm\"\n[log.console]\nlevel = \"debug\"\n",
			wantName:  "lpm",
			assertErr: assert.NoError,
		},
		"invalid": {
			config:    "name = \"invalid\"\n",
			assertErr: assert.Error,
		},
		"unknown field": {
			config:    "bogus = 1\n",
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := &testConfig{}
			var got string
			app := launcher.Application{
				TOMLConfig:  cfg,
				ErrorWriter: io.Discard,
				Main: func(ctx context.Context) error {
					got = cfg.Name
					return nil
				},
			}
			file := writeConfig(t, tc.config)
			err := app.Execute(context.Background(), "test", []string{"--config", file})
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantName, got)
		})
	}
}

func TestApplicationRequiresConfig(t *testing.T) {
	app := launcher.Application{TOMLConfig: &testConfig{}, ErrorWriter: io.Discard}
	assert.Error(t, app.Execute(context.Background(), "test", nil))
}

func TestApplicationSubcommands(t *testing.T) {
	var called bool
	app := launcher.Application{
		TOMLConfig:  &testConfig{},
		ErrorWriter: io.Discard,
		Commands: []func(command.Pather) *cobra.Command{
			func(p command.Pather) *cobra.Command {
				return &cobra.Command{
					Use: "extra",
					RunE: func(cmd *cobra.Command, args []string) error {
						called = true
						assert.Equal(t, "test extra", cmd.CommandPath())
						return nil
					},
				}
			},
		},
	}
	require.NoError(t, app.Execute(context.Background(), "test", []string{"extra"}))
	assert.True(t, called)
}
