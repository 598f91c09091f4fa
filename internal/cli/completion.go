package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/io"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for chromatic.

To load completions:

Bash:
  $ source <(chromatic completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ chromatic completion bash > /etc/bash_completion.d/chromatic
  # macOS:
  $ chromatic completion bash > $(brew --prefix)/etc/bash_completion.d/chromatic

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ chromatic completion zsh > "${fpath[1]}/_chromatic"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ chromatic completion fish | source

  # To load completions for each session, execute once:
  $ chromatic completion fish > ~/.config/fish/completions/chromatic.fish

PowerShell:
  PS> chromatic completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> chromatic completion powershell > chromatic.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// flagValues lists the completion candidates of value flags shared by
// several commands. List flags complete the item after the last comma.
func flagValues() map[string]func() []string {
	return map[string]func() []string{
		"algorithm":    algorithmNames,
		"algorithms":   algorithmNames,
		"palette":      render.PaletteNames,
		"format":       outputFormatNames,
		"input-format": inputFormatNames,
	}
}

func outputFormatNames() []string {
	names := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

func inputFormatNames() []string {
	names := make([]string, len(io.Formats))
	for i, f := range io.Formats {
		names[i] = string(f)
	}
	return names
}

// registerFlagCompletions attaches value completions to every subcommand
// that declares one of the shared flags.
func registerFlagCompletions(root *cobra.Command) {
	values := flagValues()
	for _, cmd := range root.Commands() {
		for name, list := range values {
			if cmd.Flags().Lookup(name) == nil {
				continue
			}
			_ = cmd.RegisterFlagCompletionFunc(name, completeList(list))
		}
	}
}

func completeList(list func() []string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		var out []string
		for _, v := range list() {
			if strings.HasPrefix(prefix+v, toComplete) {
				out = append(out, prefix+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}
