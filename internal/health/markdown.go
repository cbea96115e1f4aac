package health

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders Result as a Markdown section.
func RenderMarkdown(result *Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Health: %s\n\n", result.Verdict))

	sb.WriteString("| # | Criterion | Threshold | Actual | Pass |\n")
	sb.WriteString("|---|-----------|-----------|--------|------|\n")
	for i, c := range result.Criteria {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, c.Name, c.Threshold, c.Actual, passLabel(c.Pass, "PASS", "FAIL")))
	}
	sb.WriteString("\n")

	sb.WriteString("| # | Trigger | Condition | Actual | Status |\n")
	sb.WriteString("|---|---------|-----------|--------|--------|\n")
	for i, c := range result.Triggers {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, c.Name, c.Threshold, c.Actual, passLabel(c.Pass, "NOT TRIGGERED", "TRIGGERED")))
	}
	sb.WriteString("\n")

	if failed := result.Failed(); len(failed) > 0 {
		sb.WriteString("Failing checks:\n")
		for _, name := range failed {
			sb.WriteString(fmt.Sprintf("- %s\n", name))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func passLabel(pass bool, yes, no string) string {
	if pass {
		return yes
	}
	return no
}
