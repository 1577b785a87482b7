// Copyright 2018 ETH Zurich
// Copyright 2020 ETH Zurich, Anapaya Systems
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

// Package xtest contains helpers shared by the tests of this module.
package xtest

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/pkg/addr"
)

// UpdateGoldenFiles registers the '-update' flag for the test.
//
// This flag should be checked by golden file tests to see whether the golden
// files should be updated or not. The golden files should be deterministic.
//
// To update all golden files, run the following command:
//
//	go test ./... -update
//
// To update a specific package, run the following command:
//
//	go test ./path/to/package -update
//
// The flag should be registered as a package global variable:
//
//	var update = xtest.UpdateGoldenFiles()
func UpdateGoldenFiles() *bool {
	return flag.Bool("update", false, "set to regenerate the golden files")
}

// AssertGolden compares got with the content of testdata/baseName. If update
// is set, the golden file is rewritten with got instead.
func AssertGolden(t testing.TB, update bool, baseName string, got []byte) {
	t.Helper()

	if update {
		MustWriteToFile(t, got, baseName)
	}
	require.Equal(t, string(MustReadFromFile(t, baseName)), string(got))
}

// MustWriteToFile writes b to file testdata/baseName. If the file exists, it
// is truncated; if it doesn't exist, it is created. On errors, t.Fatal() is
// called.
func MustWriteToFile(t testing.TB, b []byte, baseName string) {
	t.Helper()

	if err := os.WriteFile(ExpandPath(baseName), b, 0644); err != nil {
		t.Fatal(err)
	}
}

// MustReadFromFile reads testdata/baseName and returns the raw content. On
// errors, t.Fatal() is called.
func MustReadFromFile(t testing.TB, baseName string) []byte {
	t.Helper()

	name := filepath.Join("testdata", baseName)
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// ExpandPath returns testdata/file.
func ExpandPath(file string) string {
	return filepath.Join("testdata", file)
}

// MustParseAddrs parses a comma separated list of addresses.
func MustParseAddrs(list string) []addr.Addr {
	var result []addr.Addr
	for _, s := range strings.Split(list, ",") {
		result = append(result, addr.MustParseAddr(strings.TrimSpace(s)))
	}
	return result
}

// MustParsePrefixes parses a comma separated list of prefixes.
func MustParsePrefixes(list string) []addr.Prefix {
	var result []addr.Prefix
	for _, s := range strings.Split(list, ",") {
		result = append(result, addr.MustParsePrefix(strings.TrimSpace(s)))
	}
	return result
}
