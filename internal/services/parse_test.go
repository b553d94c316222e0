package services

import (
	"testing"

	"github.com/termgenie/termgenie/internal/domain"
)

func TestParseCommandReply(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantCommand     string
		wantExplanation string
		wantErr         bool
	}{
		{
			name:            "fenced block with trailing prose",
			raw:             "```bash\nfind . -mtime -7\n```\nThis finds recent files.",
			wantCommand:     "find . -mtime -7",
			wantExplanation: "This finds recent files.",
		},
		{
			name:        "fenced block without language tag",
			raw:         "```\nls -lh\n```",
			wantCommand: "ls -lh",
		},
		{
			name:        "bare single line",
			raw:         "du -sh *",
			wantCommand: "du -sh *",
		},
		{
			name:            "bare line with trailing prose",
			raw:             "grep -r TODO .\nSearches the tree for TODO markers.",
			wantCommand:     "grep -r TODO .",
			wantExplanation: "Searches the tree for TODO markers.",
		},
		{
			name:        "labeled command line",
			raw:         "Here you go.\nCommand: tar -czf backup.tar.gz src",
			wantCommand: "tar -czf backup.tar.gz src",
		},
		{
			name:        "surrounding backticks stripped",
			raw:         "`uptime`",
			wantCommand: "uptime",
		},
		{
			name:    "empty reply",
			raw:     "   \n  ",
			wantErr: true,
		},
		{
			name:    "fence with nothing inside",
			raw:     "```bash\n```",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, explanation, err := parseCommandReply(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got command %q", command)
				}
				if !domain.IsKind(err, domain.ErrParse) {
					t.Fatalf("expected parse error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if command != tt.wantCommand {
				t.Fatalf("command = %q, want %q", command, tt.wantCommand)
			}
			if explanation != tt.wantExplanation {
				t.Fatalf("explanation = %q, want %q", explanation, tt.wantExplanation)
			}
		})
	}
}

func TestParseScriptReplyKeepsMultilineBody(t *testing.T) {
	raw := "```sh\n#!/bin/sh\nset -e\necho hello\n```\nSome trailing chatter."
	script, err := parseScriptReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "#!/bin/sh\nset -e\necho hello"
	if script != want {
		t.Fatalf("script = %q, want %q", script, want)
	}
}

func TestParseScriptReplyBare(t *testing.T) {
	script, err := parseScriptReply("#!/bin/bash\necho ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script != "#!/bin/bash\necho ok" {
		t.Fatalf("script = %q", script)
	}
}

func TestParseScriptReplyEmpty(t *testing.T) {
	if _, err := parseScriptReply(""); !domain.IsKind(err, domain.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}
