package domain

// Volume units accepted by ConvertVolume.
const (
	UnitML   = "ml"
	UnitL    = "l"
	UnitFlOz = "floz"
)

const mlPerFlOz = 29.5735295625

// ValidVolumeUnit reports whether u is a recognised volume unit.
func ValidVolumeUnit(u string) bool {
	return u == UnitML || u == UnitL || u == UnitFlOz
}

// ConvertVolume converts a volume between "ml", "l" and US "floz".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertVolume(v float64, from, to string) float64 {
	if from == to || !ValidVolumeUnit(from) || !ValidVolumeUnit(to) {
		return v
	}
	ml := v
	switch from {
	case UnitL:
		ml = v * 1000
	case UnitFlOz:
		ml = v * mlPerFlOz
	}
	switch to {
	case UnitL:
		return ml / 1000
	case UnitFlOz:
		return ml / mlPerFlOz
	}
	return ml
}
