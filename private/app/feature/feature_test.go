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

package feature_test

import (
	"reflect"
	"testing"

	"github.com/iancoleman/strcase"
	"github.com/stretchr/testify/assert"

	"github.com/scionproto/lpmsim/private/app/feature"
)

func TestParse(t *testing.T) {
	type NoTag struct {
		Untagged        bool
		NotDiscoverable string
	}

	testCases := map[string]struct {
		Input          []string
		FeatureSet     any
		ErrorAssertion assert.ErrorAssertionFunc
		Expected       any
	}{
		"set": {
			Input:          []string{"cached_lookups", " table_diffs", ""},
			FeatureSet:     &feature.Set{},
			ErrorAssertion: assert.NoError,
			Expected:       &feature.Set{CachedLookups: true, TableDiffs: true},
		},
		"untagged": {
			Input:          []string{"Untagged"},
			FeatureSet:     &NoTag{},
			ErrorAssertion: assert.NoError,
			Expected:       &NoTag{Untagged: true},
		},
		"unknown feature": {
			Input:          []string{"unknown"},
			FeatureSet:     &feature.Set{},
			ErrorAssertion: assert.Error,
			Expected:       &feature.Set{},
		},
		"not a bool": {
			Input:          []string{"NotDiscoverable"},
			FeatureSet:     &NoTag{},
			ErrorAssertion: assert.Error,
			Expected:       &NoTag{},
		},
		"nil pointer": {
			Input:          []string{"table_diffs"},
			FeatureSet:     (*feature.Set)(nil),
			ErrorAssertion: assert.Error,
			Expected:       (*feature.Set)(nil),
		},
		"struct value": {
			Input:          []string{"table_diffs"},
			FeatureSet:     feature.Set{},
			ErrorAssertion: assert.Error,
			Expected:       feature.Set{},
		},
		"nil": {
			Input:          []string{"table_diffs"},
			FeatureSet:     nil,
			ErrorAssertion: assert.Error,
			Expected:       nil,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			set := tc.FeatureSet
			err := feature.Parse(tc.Input, set)
			tc.ErrorAssertion(t, err)
			assert.Equal(t, tc.Expected, set)
		})
	}
}

func TestFeatures(t *testing.T) {
	assert.Equal(t,
		[]string{"cached_lookups", "table_diffs", "tables_on_delivery"},
		feature.Features(feature.Set{}),
	)
	assert.Equal(t, feature.Features(feature.Set{}), feature.Features(&feature.Set{}))
	assert.Nil(t, feature.Features(nil))

	s, err := feature.ParseSet([]string{"tables_on_delivery"})
	assert.NoError(t, err)
	assert.Equal(t, feature.Set{TablesOnDelivery: true}, s)
}

func TestSetTagsAreSnakeCase(t *testing.T) {
	typ := reflect.TypeOf(feature.Set{})
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		assert.Equal(t, strcase.ToSnake(field.Name), field.Tag.Get("feature"),
			"field %s", field.Name)
	}
}
