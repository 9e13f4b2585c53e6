package tui

import (
	"strings"
)

// FormatList joins items with ", ", or returns "-" for an empty list.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// FormatBool formats a boolean as yes/no.
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// TruncateString truncates a string to the given length.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// HorizontalLine returns a horizontal line of the given width.
func HorizontalLine(width int) string {
	return strings.Repeat("─", width)
}

// TreePrefix returns the tree prefix for a list item.
func TreePrefix(isLast bool) string {
	if isLast {
		return "└─ "
	}
	return "├─ "
}
