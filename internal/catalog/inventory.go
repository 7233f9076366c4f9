package catalog

import (
	"errors"
	"fmt"
)

// Band groups variants by stock level for operator filtering.
type Band string

const (
	BandLow    Band = "low"    // below 10
	BandMedium Band = "medium" // 10 through 30
	BandEnough Band = "enough" // above 30
)

const (
	lowBelow   = 10
	mediumUpTo = 30
)

var ErrUnknownBand = errors.New("unknown inventory band")

// ParseBand accepts the band names and the lookup tokens "<10", "10<=30", ">30".
func ParseBand(s string) (Band, error) {
	switch s {
	case "low", "<10":
		return BandLow, nil
	case "medium", "10<=30":
		return BandMedium, nil
	case "enough", ">30":
		return BandEnough, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBand, s)
}

func BandOf(inventory int) Band {
	switch {
	case inventory < lowBelow:
		return BandLow
	case inventory <= mediumUpTo:
		return BandMedium
	default:
		return BandEnough
	}
}

func (b Band) Contains(inventory int) bool { return BandOf(inventory) == b }

// Condition renders the band as a SQL predicate over col.
func (b Band) Condition(col string) string {
	switch b {
	case BandLow:
		return fmt.Sprintf("%s < %d", col, lowBelow)
	case BandMedium:
		return fmt.Sprintf("%s BETWEEN %d AND %d", col, lowBelow, mediumUpTo)
	case BandEnough:
		return fmt.Sprintf("%s > %d", col, mediumUpTo)
	}
	return "FALSE"
}
