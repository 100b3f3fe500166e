package domain

import (
	"fmt"
	"math"
)

// Position is the last settled reading location for a book. SectionRef alone
// is a coarse position; Locator, when present, pins an exact span within the
// section.
type Position struct {
	SectionRef string  `json:"sectionRef"`
	Locator    Locator `json:"locator,omitempty"`
}

// Target returns the most precise display target the position carries.
func (p Position) Target() string {
	if p.Locator != "" {
		return string(p.Locator)
	}
	return p.SectionRef
}

// IsZero reports whether the position carries no location at all.
func (p Position) IsZero() bool {
	return p.SectionRef == "" && p.Locator == ""
}

// FormatProgress renders a spine position as a whole-percent string, e.g.
// "42%". The first section of a non-empty spine is already progress.
func FormatProgress(sectionIndex, spineLength int) string {
	if spineLength <= 0 || sectionIndex < 0 {
		return "0%"
	}
	if sectionIndex >= spineLength {
		sectionIndex = spineLength - 1
	}
	pct := math.Round(100 * float64(sectionIndex+1) / float64(spineLength))
	return fmt.Sprintf("%d%%", int(pct))
}
