package ui

import (
	"regexp"
	"strings"
)

var (
	orderedListRegex = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	inlineCodeRegex  = regexp.MustCompile("`[^`]+`")
	boldRegex        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// RenderMarkdown applies basic terminal styling to markdown text.
// Line breaks are preserved since summaries are usually written line by line.
func RenderMarkdown(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var result strings.Builder

	inCodeBlock := false

	for _, line := range lines {
		// Handle code blocks
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}

		if inCodeBlock {
			result.WriteString(CodeStyle().Render(line) + "\n")
			continue
		}

		// Handle titles (# ## ###) - marks removed
		trimmed := strings.TrimLeft(line, "#")
		if trimmed != line && strings.HasPrefix(trimmed, " ") {
			result.WriteString(BoldStyle().Render(renderInline(strings.TrimSpace(trimmed))) + "\n")
			continue
		}

		// Handle unordered lists (- or *)
		if item, found := strings.CutPrefix(line, "- "); found {
			result.WriteString(ListStyle().Render("• "+renderInline(item)) + "\n")
			continue
		}
		if item, found := strings.CutPrefix(line, "* "); found {
			result.WriteString(ListStyle().Render("• "+renderInline(item)) + "\n")
			continue
		}

		// Handle ordered lists (1. 2. etc.)
		if matches := orderedListRegex.FindStringSubmatch(line); len(matches) == 3 {
			result.WriteString(ListStyle().Render(matches[1]+". "+renderInline(matches[2])) + "\n")
			continue
		}

		result.WriteString(renderInline(line) + "\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}

// renderInline handles inline code first so its content is not styled again
func renderInline(line string) string {
	line = inlineCodeRegex.ReplaceAllStringFunc(line, func(match string) string {
		return CodeStyle().Render(strings.Trim(match, "`"))
	})
	return boldRegex.ReplaceAllStringFunc(line, func(match string) string {
		return BoldStyle().Render(strings.Trim(match, "*"))
	})
}
