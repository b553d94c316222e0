package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/termgenie/termgenie/internal/ports"
)

// dangerousToken is what the user must type before a dangerous command is
// accepted. Anything else cancels.
const dangerousToken = "CONFIRM"

// Prompter implements ConfirmationPrompter over stdio.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. Nil arguments select
// os.Stdin/os.Stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := true
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Enabled reports whether the prompter can actually ask anything.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// ConfirmWarning asks for a y/N acknowledgement. The default is no.
func (p *Prompter) ConfirmWarning(command string, reasons []string) (bool, error) {
	p.banner("WARNING", command, reasons)
	fmt.Fprint(p.out, "Proceed? [y/N]: ")
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

// ConfirmDangerous requires the explicit token. The default is cancel.
func (p *Prompter) ConfirmDangerous(command string, reasons []string) (bool, error) {
	p.banner("DANGEROUS", command, reasons)
	fmt.Fprintf(p.out, "Type '%s' to proceed (anything else cancels): ", dangerousToken)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	return line == dangerousToken, nil
}

func (p *Prompter) banner(level, command string, reasons []string) {
	fmt.Fprintf(p.out, "\n⚠️  %s command:\n  %s\n", level, command)
	for _, reason := range reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		// EOF on a closed stdin cancels rather than errors out.
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
