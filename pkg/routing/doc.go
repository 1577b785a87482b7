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

/*
Package routing implements a static IPv4 routing table with longest prefix
match lookups, the forwarding decision derived from it and tooling to inspect
the table contents.

A Table holds at most one route per prefix. Installing a route for a prefix
that is already present replaces the existing route (last write wins). The
table does not detect contradictory routes or forwarding loops, the caller is
responsible for installing a consistent set of routes.

Lookup selects, among all routes whose prefix contains the destination, the
route with the longest prefix. Because prefixes are unique within a table, at
most one route of each length can match a given address. When routes from
several sources are compared (see LinearLookup), equal length matches are
ordered by lower metric first and then by the most recent insertion.

Resolve turns a lookup into a ForwardDecision. A miss is not an error, it
results in a Drop decision with reason NoRoute.

Dump, WriteTable, Diff and Coverage produce deterministic views of a table for
logging and debugging.
*/
package routing
