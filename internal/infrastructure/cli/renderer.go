package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/termgenie/termgenie/internal/domain"
)

// RenderCommand prints a generated command with its risk verdict.
func RenderCommand(w io.Writer, result domain.GeneratedCommand) {
	fmt.Fprintln(w, result.Command)
	if result.Explanation != "" {
		fmt.Fprintf(w, "\n%s\n", result.Explanation)
	}
	if result.RiskLevel != domain.RiskSafe {
		fmt.Fprintf(w, "\nRisk: %s\n", strings.ToUpper(string(result.RiskLevel)))
		for _, reason := range result.RiskReasons {
			fmt.Fprintf(w, " - %s\n", reason)
		}
	}
}

// RenderHistory prints entries most-recent first, with relative ages.
func RenderHistory(w io.Writer, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}
	for i, entry := range entries {
		age := humanize.Time(entry.LastUsed)
		label := ""
		if entry.Alias != "" {
			label = fmt.Sprintf(" [%s]", entry.Alias)
		}
		fmt.Fprintf(w, "%2d. %s%s\n", i+1, entry.Command, label)
		fmt.Fprintf(w, "    %q - used %d time(s), last %s\n", entry.Prompt, entry.UseCount, age)
	}
}

// RenderError prints a failure with its guidance, matching the structured
// error layout.
func RenderError(w io.Writer, err error) {
	var domErr *domain.Error
	if !errors.As(err, &domErr) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %s\n", domErr.Message)
	if domErr.Details != "" {
		fmt.Fprintf(w, "  %s\n", domErr.Details)
	}
	for _, suggestion := range domErr.Suggestions {
		fmt.Fprintf(w, "  hint: %s\n", suggestion)
	}
}
