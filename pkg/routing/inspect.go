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

package routing

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go4.org/netipx"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

// RouteRecord is the flat representation of a route used for dumps.
type RouteRecord struct {
	Network   addr.Addr
	PrefixLen uint8
	NextHop   addr.Addr
	Metric    uint32
	Interface uint32
}

// Prefix returns the destination prefix of the record.
func (r RouteRecord) Prefix() (addr.Prefix, error) {
	return addr.Canonicalize(r.Network, r.PrefixLen)
}

func (r RouteRecord) String() string {
	return fmt.Sprintf("%s/%d %s %d %d", r.Network, r.PrefixLen, r.NextHop, r.Metric,
		r.Interface)
}

// Dump returns the routes of table ordered by prefix length, longest first, and
// then by network address.
func Dump(table *Table) []RouteRecord {
	routes := table.Routes()
	records := make([]RouteRecord, 0, len(routes))
	for _, r := range routes {
		records = append(records, RouteRecord{
			Network:   r.Dest.Network(),
			PrefixLen: r.Dest.Len(),
			NextHop:   r.NextHop,
			Metric:    r.Metric,
			Interface: r.Interface,
		})
	}
	slices.SortFunc(records, compareRecords)
	return records
}

func compareRecords(a, b RouteRecord) int {
	if c := cmp.Compare(b.PrefixLen, a.PrefixLen); c != 0 {
		return c
	}
	return cmp.Compare(a.Network, b.Network)
}

// WriteTable renders records as a table.
func WriteTable(w io.Writer, records []RouteRecord) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Network.String(),
			strconv.Itoa(int(r.PrefixLen)),
			r.NextHop.String(),
			strconv.FormatUint(uint64(r.Metric), 10),
			strconv.FormatUint(uint64(r.Interface), 10),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"NETWORK", "LEN", "NEXT HOP", "METRIC", "IFACE"})
	table.AppendBulk(rows)
	table.Render()
}

// Diff returns a line based diff between two dumps. Removed records are
// prefixed with "- ", added records with "+ ". The result is empty if the
// dumps are equal.
func Diff(before, after []RouteRecord) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(formatRecords(before), formatRecords(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	changed := false
	for _, d := range diffs {
		var marker string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker, changed = "- ", true
		case diffmatchpatch.DiffInsert:
			marker, changed = "+ ", true
		default:
			marker = "  "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(marker)
			sb.WriteString(line)
		}
	}
	if !changed {
		return ""
	}
	return sb.String()
}

func formatRecords(records []RouteRecord) string {
	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Coverage returns the set of destinations that can be forwarded with the given
// records.
func Coverage(records []RouteRecord) (*netipx.IPSet, error) {
	var sb netipx.IPSetBuilder
	for _, r := range records {
		p, err := r.Prefix()
		if err != nil {
			return nil, serrors.Wrap("invalid record", err, "record", r)
		}
		sb.AddPrefix(p.NetIP())
	}
	return sb.IPSet()
}
