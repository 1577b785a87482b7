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

package topology

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

// Format is a topology file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromFile derives the format from the file extension.
func FormatFromFile(file string) (Format, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", serrors.New("unsupported topology file extension", "file", file)
	}
}

// Load reads and validates the topology in file.
func Load(file string) (*Topology, error) {
	format, err := FormatFromFile(file)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading topology", err, "file", file)
	}
	topo, err := Decode(raw, format)
	if err != nil {
		return nil, serrors.Wrap("loading topology", err, "file", file)
	}
	return topo, nil
}

// Decode parses and validates a topology. Unknown fields are rejected.
func Decode(raw []byte, format Format) (*Topology, error) {
	var topo Topology
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
		if err := dec.Decode(&topo); err != nil {
			return nil, serrors.Wrap("decoding TOML", err)
		}
	case FormatYAML:
		if err := yaml.UnmarshalStrict(raw, &topo); err != nil {
			return nil, serrors.Wrap("decoding YAML", err)
		}
	default:
		return nil, serrors.New("unsupported format", "format", format)
	}
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	return &topo, nil
}

// Encode writes the topology in the given format.
func Encode(w io.Writer, topo *Topology, format Format) error {
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(topo)
	case FormatYAML:
		raw, err := yaml.Marshal(topo)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	default:
		return serrors.New("unsupported format", "format", format)
	}
}
