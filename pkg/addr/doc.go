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
Package addr contains the IPv4 address and prefix types used by the routing
engine.

An Addr is a 32 bit value in host byte order. A Prefix is a network address
together with the number of leading bits that are significant for matching.
Prefixes are always canonical: all bits of the network beyond the prefix length
are zero. Every constructor goes through Canonicalize, so a Prefix obtained from
this package can be used as a map key without further normalization.
*/
package addr
