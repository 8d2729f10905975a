package content

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	headingRe = regexp.MustCompile(`^#+`)
	orderedRe = regexp.MustCompile(`^\d+\.\s`)
	itemNumRe = regexp.MustCompile(`^\d+\.\s*`)
	bulletRe  = regexp.MustCompile(`^[-*]\s*`)
)

// FormatFlashcardContent converts the markdown-lite text that generation
// produces for card faces into HTML. Pipe characters are treated as table
// cell separators and runs of piped lines are wrapped in a table.
func FormatFlashcardContent(text string) string {
	if text == "" {
		return ""
	}

	formatted := boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	formatted = italicRe.ReplaceAllString(formatted, "<em>$1</em>")
	formatted = strings.ReplaceAll(formatted, "\n", "<br>")
	formatted = strings.ReplaceAll(formatted, "|", "</td><td>")

	if !strings.Contains(formatted, "</td><td>") {
		return formatted
	}

	lines := strings.Split(formatted, "<br>")
	var out []string
	inTable := false
	for _, line := range lines {
		if strings.Contains(line, "</td><td>") {
			if !inTable {
				out = append(out, `<table class="flashcard-table">`)
				inTable = true
			}
			out = append(out, "<tr><td>"+line+"</td></tr>")
		} else {
			if inTable {
				out = append(out, "</table>")
				inTable = false
			}
			out = append(out, line)
		}
	}
	if inTable {
		out = append(out, "</table>")
	}
	return strings.Join(out, "<br>")
}

// FormatSummaryText renders generated summary text as HTML. Blank-line
// separated blocks become headings, lists, or paragraphs.
func FormatSummaryText(text string) string {
	if text == "" {
		return ""
	}

	var out strings.Builder
	for _, paragraph := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := len(headingRe.FindString(trimmed))
			if level > 6 {
				level = 6
			}
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			fmt.Fprintf(&out, "<h%d>%s</h%d>", level, heading, level)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			out.WriteString("<ul>")
			for _, item := range strings.Split(trimmed, "\n") {
				cleaned := strings.TrimSpace(bulletRe.ReplaceAllString(item, ""))
				if cleaned != "" {
					out.WriteString("<li>" + cleaned + "</li>")
				}
			}
			out.WriteString("</ul>")
			continue
		}

		if orderedRe.MatchString(trimmed) {
			out.WriteString("<ol>")
			for _, item := range strings.Split(trimmed, "\n") {
				cleaned := strings.TrimSpace(itemNumRe.ReplaceAllString(item, ""))
				if cleaned != "" {
					out.WriteString("<li>" + cleaned + "</li>")
				}
			}
			out.WriteString("</ol>")
			continue
		}

		out.WriteString("<p>" + trimmed + "</p>")
	}
	return out.String()
}

// WordCount returns the number of whitespace separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
