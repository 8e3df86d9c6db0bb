package cli

import "github.com/spf13/cobra"

func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bpmnlayout.

To load completions:

Bash:
  $ source <(bpmnlayout completion bash)
  $ bpmnlayout completion bash > /etc/bash_completion.d/bpmnlayout

Zsh:
  $ bpmnlayout completion zsh > "${fpath[1]}/_bpmnlayout"

Fish:
  $ bpmnlayout completion fish | source

PowerShell:
  PS> bpmnlayout completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}

	return cmd
}
