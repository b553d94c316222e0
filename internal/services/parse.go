package services

import (
	"strings"

	"github.com/termgenie/termgenie/internal/domain"
)

// The response parser tolerates the reply shapes backends actually produce:
// fenced code blocks (with or without a language tag), "Command:"-labeled
// lines, and bare replies with trailing prose. Text after the command is
// kept as the explanation, never inserted into a terminal.

// parseCommandReply extracts a single command and an optional explanation
// from a raw backend reply.
func parseCommandReply(raw string) (command, explanation string, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", domain.NewParseError(raw)
	}

	if block, rest, ok := extractFencedBlock(trimmed); ok {
		command = firstLine(block)
		explanation = strings.TrimSpace(rest)
	} else if labeled, ok := extractLabeledCommand(trimmed); ok {
		command = labeled
	} else {
		command, explanation = splitBareReply(trimmed)
	}

	command = strings.Trim(command, "`")
	command = strings.TrimSpace(command)
	if command == "" {
		return "", "", domain.NewParseError(raw)
	}
	return command, explanation, nil
}

// parseScriptReply extracts a multi-line script body. Fenced content is
// taken whole; bare replies are kept as-is with surrounding backticks
// stripped.
func parseScriptReply(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.NewParseError(raw)
	}

	script := trimmed
	if block, _, ok := extractFencedBlock(trimmed); ok {
		script = block
	}
	script = strings.TrimSpace(strings.Trim(script, "`"))
	if script == "" {
		return "", domain.NewParseError(raw)
	}
	return script, nil
}

// extractFencedBlock returns the content of the first fenced code block and
// whatever text follows the closing fence.
func extractFencedBlock(content string) (block, rest string, ok bool) {
	start := strings.Index(content, "```")
	if start == -1 {
		return "", "", false
	}
	after := content[start+3:]
	end := strings.Index(after, "```")
	if end == -1 {
		return "", "", false
	}
	block = after[:end]
	rest = after[end+3:]

	// Drop the language tag line ("bash", "sh", "zsh", ...).
	if idx := strings.Index(block, "\n"); idx != -1 {
		tag := strings.TrimSpace(block[:idx])
		if tag != "" && !strings.ContainsAny(tag, " \t") {
			block = block[idx+1:]
		}
	}
	return strings.TrimSpace(block), rest, true
}

func extractLabeledCommand(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "command:") {
			cmd := strings.TrimSpace(line[len("command:"):])
			if cmd != "" {
				return cmd, true
			}
		}
	}
	return "", false
}

// splitBareReply treats the first non-empty line as the command and any
// remaining lines as explanation.
func splitBareReply(content string) (command, explanation string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return line, strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
	}
	return "", ""
}

func firstLine(block string) string {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
