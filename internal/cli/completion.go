package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgview/pkg/pipeline"
	"github.com/matzehuels/cfgview/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cfgview.

To load completions:

Bash:
  $ source <(cfgview completion bash)

Zsh:
  $ cfgview completion zsh > "${fpath[1]}/_cfgview"

Fish:
  $ cfgview completion fish | source

PowerShell:
  PS> cfgview completion powershell | Out-String | Invoke-Expression

Completing --function reads the function names from the compile result
named on the command line.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.out)
			}
			return nil
		},
	}

	return cmd
}

// registerRenderCompletions completes the enumerated render flags, and
// --function from the input file once one is given.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("function", completeFunctions)
	_ = cmd.RegisterFlagCompletionFunc("arrow", cobra.FixedCompletions(render.ArrowStyles, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions(
		[]string{pipeline.StyleDark, pipeline.StyleLight}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT},
		cobra.ShellCompDirectiveNoFileComp))
}

func completeFunctions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 || args[0] == "-" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := functionNames(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
