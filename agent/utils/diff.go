package utils

import (
	"github.com/pmezard/go-difflib/difflib"
)

// GenerateDiff produces a unified diff of a settings file before and after
// a change. Identical content yields an empty string.
func GenerateDiff(fileName, before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + fileName,
		ToFile:   "b/" + fileName,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}
