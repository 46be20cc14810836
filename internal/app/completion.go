package app

import (
	"strings"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell autocompletion scripts",
		Long: `Generate autocompletion scripts for your shell. Font arguments of
show, get, and install complete from the active catalog.

Examples:
  # Bash (add to ~/.bashrc)
  source <(winefonts completion bash)

  # Zsh (add to ~/.zshrc)
  source <(winefonts completion zsh)

  # Fish
  winefonts completion fish > ~/.config/fish/completions/winefonts.fish

  # PowerShell
  winefonts completion powershell | Out-String | Invoke-Expression`,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return cmd.Help()
			}
		},
	}

	return cmd
}

// completeFonts offers font short names (or names) from the active catalog.
func completeFonts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	idx, err := loadIndex()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, f := range idx.File().Fonts {
		name := f.ShortName
		if name == "" {
			name = f.Name
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			out = append(out, name+"\t"+f.Name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
