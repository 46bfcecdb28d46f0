// Package bom holds the bill-of-materials table mapping board-type names to
// the parts and per-unit amounts required to build one board.
package bom

// Entry is a single BOM line: one part and the amount consumed per board.
type Entry struct {
	PartID     int
	UnitAmount float64
}

// The table is keyed by board-type name, not numeric code. Production counts
// arrive keyed by code; callers bridge the two through the boardtype resolver.
var table = map[string][]Entry{
	"PCB-MAIN-A11": {
		{PartID: 1001, UnitAmount: 4},
		{PartID: 1002, UnitAmount: 2},
		{PartID: 1003, UnitAmount: 8},
		{PartID: 2001, UnitAmount: 1},
	},
	"PCB-MAIN-A12": {
		{PartID: 1001, UnitAmount: 4},
		{PartID: 1002, UnitAmount: 2},
		{PartID: 1004, UnitAmount: 6},
		{PartID: 2001, UnitAmount: 1},
	},
	"PCB-CTRL-B21": {
		{PartID: 1002, UnitAmount: 1},
		{PartID: 1005, UnitAmount: 12},
		{PartID: 2002, UnitAmount: 2},
	},
	"PCB-CTRL-B22": {
		{PartID: 1005, UnitAmount: 10},
		{PartID: 2002, UnitAmount: 2},
		{PartID: 2003, UnitAmount: 0.5},
	},
	"PCB-PWR-C31": {
		{PartID: 3001, UnitAmount: 2},
		{PartID: 3002, UnitAmount: 4},
		{PartID: 2003, UnitAmount: 1.5},
	},
	"PCB-SENS-D41": {
		{PartID: 1003, UnitAmount: 2},
		{PartID: 4001, UnitAmount: 1},
	},
}

// Resolve returns the BOM entries for a board-type name. The second return
// reports whether the name has a mapping; callers skip unmapped names.
func Resolve(boardType string) ([]Entry, bool) {
	entries, ok := table[boardType]
	return entries, ok
}
