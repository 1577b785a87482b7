// Copyright 2018 ETH Zurich
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

// Package util contains small helpers shared by configuration types.
package util

import (
	"encoding"
	"time"

	"github.com/spf13/pflag"

	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

var _ (encoding.TextUnmarshaler) = (*DurWrap)(nil)
var _ (encoding.TextMarshaler) = DurWrap{}
var _ (pflag.Value) = (*DurWrap)(nil)

// DurWrap is a wrapper to enable marshalling and unmarshalling of durations
// in the "1s" or "250ms" format in TOML and YAML files.
type DurWrap struct {
	time.Duration
}

func (d *DurWrap) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DurWrap) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.Set(s)
}

func (d *DurWrap) Set(text string) error {
	dur, err := time.ParseDuration(text)
	if err != nil {
		return serrors.Wrap("parsing duration", err, "input", text)
	}
	if dur < 0 {
		return serrors.New("negative duration", "input", text)
	}
	d.Duration = dur
	return nil
}

func (d DurWrap) MarshalText() (text []byte, err error) {
	return []byte(d.String()), nil
}

// MarshalYAML implements yaml.Marshaler.
func (d DurWrap) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d DurWrap) String() string {
	return d.Duration.String()
}

func (d *DurWrap) Type() string {
	return "duration"
}
