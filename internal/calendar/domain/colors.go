package domain

import (
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
)

// Color is a named display color for calendar rendering.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorGray   Color = "gray"
)

// categoryPalette is the fixed palette category labels hash into.
var categoryPalette = []Color{
	"blue",
	"teal",
	"purple",
	"pink",
	"indigo",
	"cyan",
	"amber",
	"lime",
}

// PriorityColor maps a task priority to its fixed display color.
func PriorityColor(p value_objects.Priority) Color {
	switch p {
	case value_objects.PriorityCritical:
		return ColorRed
	case value_objects.PriorityHigh:
		return ColorOrange
	case value_objects.PriorityMedium:
		return ColorYellow
	case value_objects.PriorityLow:
		return ColorGreen
	default:
		return ColorGray
	}
}

// CategoryColor deterministically assigns a palette color to a category
// label. The same label always yields the same color within a process; the
// hash is a plain polynomial over the bytes so it is stable across runs too.
func CategoryColor(category string) Color {
	if category == "" {
		return ColorGray
	}

	hash := 0
	for _, ch := range category {
		hash = hash*31 + int(ch)
	}
	if hash < 0 {
		hash = -hash
	}
	return categoryPalette[hash%len(categoryPalette)]
}
