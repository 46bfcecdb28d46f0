// Package boardtype resolves numeric board-type codes embedded in inspection
// image names to descriptive board metadata.
package boardtype

// Info describes a physical board model.
type Info struct {
	Name              string
	Size              string
	SubstrateMaterial string
	SMTDensity        string
}

// Unknown is returned for codes with no registered board type.
var Unknown = Info{
	Name:              "unknown",
	Size:              "unknown",
	SubstrateMaterial: "unknown",
	SMTDensity:        "unknown",
}

var boardTypes = map[int]Info{
	11: {Name: "PCB-MAIN-A11", Size: "120x80mm", SubstrateMaterial: "FR-4", SMTDensity: "high"},
	12: {Name: "PCB-MAIN-A12", Size: "120x80mm", SubstrateMaterial: "FR-4", SMTDensity: "high"},
	21: {Name: "PCB-CTRL-B21", Size: "80x60mm", SubstrateMaterial: "FR-4", SMTDensity: "medium"},
	22: {Name: "PCB-CTRL-B22", Size: "80x60mm", SubstrateMaterial: "CEM-3", SMTDensity: "medium"},
	31: {Name: "PCB-PWR-C31", Size: "100x100mm", SubstrateMaterial: "Aluminum", SMTDensity: "low"},
	41: {Name: "PCB-SENS-D41", Size: "40x40mm", SubstrateMaterial: "FR-4", SMTDensity: "high"},
}

// Resolve maps a board-type code to its metadata. Unmapped codes resolve to
// Unknown rather than failing so that a stray code never aborts a batch.
func Resolve(code int) Info {
	if info, ok := boardTypes[code]; ok {
		return info
	}
	return Unknown
}

// Lookup is like Resolve but reports whether the code is registered.
func Lookup(code int) (Info, bool) {
	info, ok := boardTypes[code]
	return info, ok
}
