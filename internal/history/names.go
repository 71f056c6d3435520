package history

import (
	"fmt"
	"regexp"
)

// sortableStamp matches a zero-padded calendar date anywhere in a name.
var sortableStamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// NameIssue describes a history entry whose name may not sort chronologically.
type NameIssue struct {
	Name   string
	Reason string
}

// CheckNames returns an issue for every name that carries no zero-padded
// YYYY-MM-DD stamp. Such entries may be kept or pruned out of capture order.
func CheckNames(names []string) []NameIssue {
	var issues []NameIssue
	for _, name := range names {
		if !sortableStamp.MatchString(name) {
			issues = append(issues, NameIssue{
				Name:   name,
				Reason: "no zero-padded YYYY-MM-DD timestamp in file name",
			})
		}
	}
	return issues
}

// FormatIssue formats an issue as a warning line for the given category.
func FormatIssue(category string, issue NameIssue) string {
	return fmt.Sprintf("Warning: %s history entry %s has %s; retention order may be wrong", category, issue.Name, issue.Reason)
}
