// Package format renders a UserResponse into the text returned to the calling agent.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoonderkins/claude-confirm/core/types"
)

// Markers emitted in the tool result. The task header is a directive to the
// calling agent so it acts on the selection instead of asking again.
const (
	CancelledMarker = "User cancelled the operation"
	ConfirmedMarker = "User confirmed the operation"
	TasksHeader     = "⚠️ The user confirmed and selected the following tasks. Execute them immediately (do not ask for confirmation again):"
	TasksListHeader = "📋 Tasks to execute now:"
	ActNowDirective = "⚡ Action: start implementing this task immediately"
	UserInputHeader = "💬 Additional user input:"
)

// Format builds the tool result text for resp. It is pure: the same inputs
// always produce the same output.
func Format(req *types.PopupRequest, resp types.UserResponse) string {
	var b strings.Builder

	var sections []types.Section
	if req != nil {
		sections = req.Sections
	}

	switch {
	case !resp.Confirmed:
		b.WriteString(CancelledMarker + "\n")
	case len(resp.SelectedSections) > 0:
		writeTasks(&b, sections, resp.SelectedSections)
	default:
		b.WriteString(ConfirmedMarker + "\n")
	}

	if resp.UserInput != "" {
		b.WriteString("\n\n" + UserInputHeader + "\n")
		b.WriteString(resp.UserInput)
	}

	if len(resp.Images) > 0 {
		fmt.Fprintf(&b, "\n\nAttached images: %d", len(resp.Images))
	}

	return b.String()
}

func writeTasks(b *strings.Builder, sections []types.Section, selected []int) {
	b.WriteString(TasksHeader + "\n")
	fmt.Fprintf(b, "\nSelected section indices: %s\n", indexList(selected))
	b.WriteString("\n" + TasksListHeader + "\n")

	emitted := make(map[int]bool, len(selected))
	n := 0
	for _, idx := range selected {
		// out-of-range and repeated indices are skipped, never an error
		if idx < 0 || idx >= len(sections) || emitted[idx] {
			continue
		}
		emitted[idx] = true
		n++

		section := sections[idx]
		fmt.Fprintf(b, "\n✅ Task %d (index %d): %s\n", n, idx, section.Title)
		fmt.Fprintf(b, "   Details: %s\n", section.Content)
		b.WriteString("   " + ActNowDirective + "\n")
	}
}

// indexList renders indices as [0, 2, 5]
func indexList(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
