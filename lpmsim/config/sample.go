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

package config

const simulationSample = `
# The topology file (.toml, .yaml or .yml). If empty, the builtin six node
# longest prefix example is simulated. (default "")
topology_file = ""

# Packets are dropped after this many hops. (default 64)
hop_limit = 64

# Number of destinations cached per node if the cached_lookups feature is
# enabled. (default 256)
cache_size = 256

# Number of rounds the echo applications are run. (default 1)
probe_count = 1

# Pause between two rounds. (default 1s)
probe_interval = "1s"

# Enabled features (cached_lookups|table_diffs|tables_on_delivery).
# (default [])
features = []
`
