// Package cli is the cobra surface of termgenie.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termgenie/termgenie/internal/app"
	"github.com/termgenie/termgenie/internal/ports"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and wires the cobra command tree.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	container.Generator.NewProgress = func() ports.ProgressReporter { return NewSpinner(nil) }

	deps := &commandDeps{
		container: container,
		prompter:  NewPrompter(nil, nil),
		clipboard: NewClipboard(),
		out:       os.Stdout,
	}
	return newRoot(deps), container, nil
}

// newRoot assembles the command tree around prepared dependencies. The root
// command itself runs generation, so `termgenie list files` works without a
// subcommand.
func newRoot(deps *commandDeps) *cobra.Command {
	root := &cobra.Command{
		Use:   "termgenie [instruction]",
		Short: "termgenie - natural language to shell commands",
		Long:  "termgenie turns a natural-language instruction into a shell command, with risk screening and a reusable history.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(deps, cmd, args, generateOptions{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCommand(deps))
	root.AddCommand(newScriptCommand(deps))
	root.AddCommand(newExplainCommand(deps))
	root.AddCommand(newHistoryCommand(deps))
	root.AddCommand(newModelsCommand(deps))
	root.AddCommand(newConfigCommand(deps))
	return root
}

type commandDeps struct {
	container *app.Container
	prompter  ports.ConfirmationPrompter
	clipboard ports.Clipboard
	out       io.Writer
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
