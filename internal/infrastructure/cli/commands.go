package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termgenie/termgenie/internal/domain"
)

type generateOptions struct {
	model   string
	copyCmd bool
	alias   string
	noSave  bool
}

func runGenerate(deps *commandDeps, cmd *cobra.Command, args []string, opts generateOptions) error {
	gen := deps.container.Generator
	if opts.model != "" {
		def, ok := deps.container.Config.FindModelByName(opts.model)
		if !ok {
			return domain.NewConfigError(fmt.Sprintf("model %s not found in configuration", opts.model), nil)
		}
		gen.SetModel(def)
	}

	req := buildRequest(deps, joinArgs(args))
	result, err := gen.GenerateCommand(cmd.Context(), req)
	if err != nil {
		return err
	}

	RenderCommand(deps.out, result)

	accepted, err := confirmRisk(deps, result)
	if err != nil {
		return err
	}
	if !accepted {
		fmt.Fprintln(deps.out, "Cancelled. Command was not saved.")
		return nil
	}

	if !opts.noSave {
		deps.container.History.Add(req.Instruction, result.Command, opts.alias)
	}
	if opts.copyCmd {
		if err := deps.clipboard.Copy(result.Command); err != nil {
			deps.container.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		} else {
			fmt.Fprintln(deps.out, "Copied to clipboard.")
		}
	}
	return nil
}

func newGenerateCommand(deps *commandDeps) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [instruction]",
		Short: "Generate a shell command from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(deps, cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&opts.copyCmd, "copy", "c", false, "Copy the generated command to the clipboard")
	cmd.Flags().StringVarP(&opts.alias, "alias", "a", "", "Save the command under an alias")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "Do not record the command in history")

	return cmd
}

func newScriptCommand(deps *commandDeps) *cobra.Command {
	var (
		model   string
		outFile string
		copyCmd bool
	)

	cmd := &cobra.Command{
		Use:   "script [instruction]",
		Short: "Generate a multi-line shell script",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := deps.container.Generator
			if model != "" {
				def, ok := deps.container.Config.FindModelByName(model)
				if !ok {
					return domain.NewConfigError(fmt.Sprintf("model %s not found in configuration", model), nil)
				}
				gen.SetModel(def)
			}

			req := buildRequest(deps, joinArgs(args))
			script, err := gen.GenerateScript(cmd.Context(), req)
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(script+"\n"), 0o755); err != nil {
					return fmt.Errorf("write script to %s: %w", outFile, err)
				}
				fmt.Fprintf(deps.out, "Script written to %s\n", outFile)
				return nil
			}
			fmt.Fprintln(deps.out, script)
			if copyCmd {
				if err := deps.clipboard.Copy(script); err != nil {
					deps.container.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the script to a file instead of stdout")
	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the script to the clipboard")

	return cmd
}

func newExplainCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [command]",
		Short: "Explain what a shell command does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explanation, err := deps.container.Generator.Explain(cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.out, explanation)
			return nil
		},
	}
}

func newHistoryCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and reuse previously generated commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := deps.container.History.All()
			if len(entries) > domain.DefaultHistoryDisplayLimit {
				entries = entries[:domain.DefaultHistoryDisplayLimit]
			}
			RenderHistory(deps.out, entries)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Show the full history",
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderHistory(deps.out, deps.container.History.All())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search [query]",
		Short: "Search history by prompt, command, or alias",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderHistory(deps.out, deps.container.History.Search(joinArgs(args)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use [alias|number]",
		Short: "Print a saved command and mark it as used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := resolveHistoryEntry(deps, args[0])
			if err != nil {
				return err
			}
			// Re-adding the pair bumps its recency and use count.
			deps.container.History.Add(entry.Prompt, entry.Command, "")
			fmt.Fprintln(deps.out, entry.Command)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "alias [number] [name]",
		Short: "Attach an alias to a history entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := resolveHistoryEntry(deps, args[0])
			if err != nil {
				return err
			}
			deps.container.History.Add(entry.Prompt, entry.Command, args[1])
			fmt.Fprintf(deps.out, "Alias %q set.\n", args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.container.History.Clear()
			fmt.Fprintln(deps.out, "History cleared.")
			return nil
		},
	})

	return cmd
}

func newModelsCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.container.Config
			for _, model := range cfg.Models {
				marker := " "
				if model.Name == cfg.Preferences.DefaultModel {
					marker = "*"
				}
				fmt.Fprintf(deps.out, "%s %s (%s)\n", marker, model.Name, model.ModelID)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use [name]",
		Short: "Set the default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.container.Config
			if !cfg.HasModel(args[0]) {
				return domain.NewConfigError(fmt.Sprintf("model %s not found in configuration", args[0]), nil)
			}
			cfg.Preferences.DefaultModel = args[0]
			if err := deps.container.ConfigLoader.Save(cfg); err != nil {
				return err
			}
			if err := deps.container.ApplyConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(deps.out, "Default model set to %s.\n", args[0])
			return nil
		},
	})

	return cmd
}

func newConfigCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update termgenie configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(deps.out, deps.container.ConfigLoader.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key [secret-name] [key]",
		Short: "Store an API key for a model backend",
		Long:  "Store an API key under a secret name referenced by a model definition. Omit the key argument to paste it without shell history.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 2 {
				key = args[1]
			} else {
				fmt.Fprint(deps.out, "API key: ")
				line, err := readSecretLine()
				if err != nil {
					return err
				}
				key = line
			}
			if strings.TrimSpace(key) == "" {
				return domain.NewValidationError("API key must not be empty")
			}
			if err := deps.container.Secrets.Set(args[0], strings.TrimSpace(key)); err != nil {
				return err
			}
			fmt.Fprintf(deps.out, "Key stored for %s.\n", args[0])
			return nil
		},
	})

	return cmd
}

func buildRequest(deps *commandDeps, instruction string) domain.GenerateRequest {
	wd, _ := os.Getwd()
	return domain.GenerateRequest{
		Instruction:        instruction,
		WorkingDir:         wd,
		Shell:              os.Getenv("SHELL"),
		CustomInstructions: deps.container.Config.Preferences.CustomInstructions,
	}
}

// confirmRisk runs the interactive acknowledgement for risky verdicts.
// Dangerous commands in a non-interactive session are never accepted.
func confirmRisk(deps *commandDeps, result domain.GeneratedCommand) (bool, error) {
	if !deps.container.Config.Security.Enabled {
		return true, nil
	}
	switch result.RiskLevel {
	case domain.RiskWarning:
		if !deps.prompter.Enabled() {
			return true, nil
		}
		return deps.prompter.ConfirmWarning(result.Command, result.RiskReasons)
	case domain.RiskDangerous:
		if !deps.prompter.Enabled() {
			return false, nil
		}
		return deps.prompter.ConfirmDangerous(result.Command, result.RiskReasons)
	default:
		return true, nil
	}
}

func resolveHistoryEntry(deps *commandDeps, ref string) (domain.HistoryEntry, error) {
	if entry, ok := deps.container.History.ByAlias(ref); ok {
		return entry, nil
	}
	if index, err := strconv.Atoi(ref); err == nil {
		entries := deps.container.History.All()
		if index >= 1 && index <= len(entries) {
			return entries[index-1], nil
		}
	}
	return domain.HistoryEntry{}, domain.NewValidationError(fmt.Sprintf("no history entry matches %q", ref))
}

func readSecretLine() (string, error) {
	// Plain line read; stdin may be a pipe in scripted setups.
	var line string
	if _, err := fmt.Scanln(&line); err != nil && line == "" {
		return "", err
	}
	return line, nil
}
