package services

import (
	"bytes"
	"text/template"

	"github.com/termgenie/termgenie/internal/domain"
)

// Prompt templates are deterministic given the same inputs; the output
// contract pins the backend to exactly one command (or script) with no
// surrounding prose.

var commandPrompt = template.Must(template.New("command").Parse(`You are a shell command expert. Generate a single shell command based on the user's request.

Context:
- Shell: {{.Shell}}
- Current Directory: {{.WorkingDir}}
{{- if .CustomInstructions}}
- Additional instructions: {{.CustomInstructions}}
{{- end}}

User Request: {{.Instruction}}

Rules:
1. Return ONLY the shell command, nothing else
2. No explanations, no markdown, no code blocks
3. The command must be valid for {{.Shell}}
4. If the request is unclear, generate the most likely intended command
5. Prefer common, well-known commands over obscure ones

Command:`))

var scriptPrompt = template.Must(template.New("script").Parse(`You are a shell scripting expert. Write a complete {{.Shell}} script that accomplishes the user's request.

Context:
- Shell: {{.Shell}}
- Current Directory: {{.WorkingDir}}
{{- if .CustomInstructions}}
- Additional instructions: {{.CustomInstructions}}
{{- end}}

User Request: {{.Instruction}}

Rules:
1. Return the script body inside a single fenced code block
2. Start the script with an appropriate shebang line
3. No prose outside the code block
4. Handle obvious error cases, keep the script readable

Script:`))

var explainPrompt = template.Must(template.New("explain").Parse(`Explain this shell command in detail:

Command: {{.Command}}

Provide:
1. Overall purpose of the command
2. Explanation of each flag/option
3. Expected output or behavior
4. Any warnings or considerations

Keep the explanation concise but informative. Use simple language.`))

type promptData struct {
	Instruction        string
	WorkingDir         string
	Shell              string
	CustomInstructions string
}

func buildCommandPrompt(req domain.GenerateRequest) (string, error) {
	return renderPrompt(commandPrompt, promptData{
		Instruction:        req.Instruction,
		WorkingDir:         req.WorkingDir,
		Shell:              req.NormalizedShell(),
		CustomInstructions: req.CustomInstructions,
	})
}

func buildScriptPrompt(req domain.GenerateRequest) (string, error) {
	return renderPrompt(scriptPrompt, promptData{
		Instruction:        req.Instruction,
		WorkingDir:         req.WorkingDir,
		Shell:              req.NormalizedShell(),
		CustomInstructions: req.CustomInstructions,
	})
}

func buildExplainPrompt(command string) (string, error) {
	return renderPrompt(explainPrompt, struct{ Command string }{Command: command})
}

func renderPrompt(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
