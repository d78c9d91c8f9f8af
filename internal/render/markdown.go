// Package render produces the markdown bodies of file, folder, and overall
// review-summary threads. All functions are pure; callers derive statuses
// before rendering.
package render

import (
	"fmt"
	"strings"

	"github.com/rkoval/revthread/internal/domain/model"
)

// severityOrder fixes the rendering order of suggestion sections.
var severityOrder = []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow}

var severityHeadings = map[model.Severity]string{
	model.SeverityHigh:   "### High severity",
	model.SeverityMedium: "### Medium severity",
	model.SeverityLow:    "### Low severity",
}

// FileSummary renders the summary thread body for one file. baseURL is the
// PR's web URL; each suggestion links back to its own thread via
// discussionId/commentId query parameters.
func FileSummary(path string, entry *model.FileEntry, baseURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## File Review Summary: %s\n\n", model.NormalizePath(path))
	fmt.Fprintf(&b, "**Status:** %s\n", entry.Status)

	if entry.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", entry.Summary)
	}

	for _, sev := range severityOrder {
		var lines []string
		for _, s := range entry.Suggestions {
			if s.Severity != sev {
				continue
			}
			lines = append(lines, suggestionLine(s, baseURL))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", severityHeadings[sev])
		for _, line := range lines {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	return b.String()
}

func suggestionLine(s model.SuggestionEntry, baseURL string) string {
	link := fmt.Sprintf("%s?discussionId=%d&commentId=%d", baseURL, s.ThreadID, s.CommentID)

	var loc string
	switch {
	case s.EndLine > s.Line:
		loc = fmt.Sprintf(" (lines %d-%d)", s.Line, s.EndLine)
	case s.Line > 0:
		loc = fmt.Sprintf(" (line %d)", s.Line)
	}

	line := fmt.Sprintf("- [%s](%s)%s", s.LinkText, link, loc)
	if s.OutOfScope {
		line += " _(out of scope)_"
	}
	return line
}

// FolderSummary renders the summary thread body for one folder, listing its
// files in scaffold order with their current statuses.
func FolderSummary(name string, state *model.ReviewState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Folder Review Summary: %s\n\n", name)

	status := model.StatusUnreviewed
	if folder, ok := state.Folders[name]; ok {
		status = folder.Status
	}
	fmt.Fprintf(&b, "**Status:** %s\n", status)

	if folder, ok := state.Folders[name]; ok && len(folder.Files) > 0 {
		b.WriteString("\n")
		for _, path := range folder.Files {
			if entry, ok := state.Files[path]; ok {
				fmt.Fprintf(&b, "- `%s` — %s\n", path, entry.Status)
			}
		}
	}

	return b.String()
}

// OverallSummary renders the PR-level summary thread body, listing folders
// in scaffold order with their current statuses.
func OverallSummary(state *model.ReviewState) string {
	var b strings.Builder

	b.WriteString("## Overall PR Review Summary\n\n")
	fmt.Fprintf(&b, "**Status:** %s\n", state.Overall.Status)

	if len(state.FolderOrder) > 0 {
		b.WriteString("\n")
		for _, name := range state.FolderOrder {
			if folder, ok := state.Folders[name]; ok {
				fmt.Fprintf(&b, "- `%s` — %s\n", name, folder.Status)
			}
		}
	}

	return b.String()
}
