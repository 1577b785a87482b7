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

// Package feature parses the optional simulator behaviors that can be toggled
// with the --features command line flag.
//
// Feature sets are structs of booleans. The feature tag names the flag, fields
// without a tag use the field name. Non-boolean fields are ignored.
package feature

import (
	"reflect"
	"slices"
	"strings"

	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

// Set lists the simulator features.
type Set struct {
	// CachedLookups routes lookups of every node through a lookup cache.
	CachedLookups bool `feature:"cached_lookups"`
	// TableDiffs logs a diff of a node's table whenever it changes.
	TableDiffs bool `feature:"table_diffs"`
	// TablesOnDelivery dumps all tables whenever a packet reaches its
	// destination.
	TablesOnDelivery bool `feature:"tables_on_delivery"`
}

// Parse enables the named features in featureSet, which must be a non-nil
// pointer to a struct.
func Parse(input []string, featureSet any) error {
	val := reflect.ValueOf(featureSet)
	if !val.IsValid() || val.Kind() != reflect.Ptr || val.IsNil() {
		return serrors.New("feature set must be a non-nil pointer",
			"type", reflect.TypeOf(featureSet))
	}
	fields := fieldIndexes(val.Type().Elem())
	for _, name := range input {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		i, ok := fields[name]
		if !ok {
			return serrors.New("feature not supported", "feature", name,
				"supported", strings.Join(Features(featureSet), ","))
		}
		val.Elem().Field(i).SetBool(true)
	}
	return nil
}

// ParseSet parses input into a Set.
func ParseSet(input []string) (Set, error) {
	var s Set
	if err := Parse(input, &s); err != nil {
		return Set{}, err
	}
	return s, nil
}

// Features returns the sorted names of the features in featureSet.
func Features(featureSet any) []string {
	t := reflect.TypeOf(featureSet)
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var names []string
	for name := range fieldIndexes(t) {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func fieldIndexes(t reflect.Type) map[string]int {
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Bool {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("feature"); ok {
			name, _, _ = strings.Cut(tag, ",")
		}
		m[name] = i
	}
	return m
}
