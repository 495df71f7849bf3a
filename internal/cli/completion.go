package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textpics/pkg/fonts"
	"github.com/matzehuels/textpics/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for textpics.

Completions cover subcommands, flags, --underline-style values, builtin
font names for --font, corpus files and font directories.

Bash:
  $ source <(textpics completion bash)

Zsh:
  $ textpics completion zsh > "${fpath[1]}/_textpics"

Fish:
  $ textpics completion fish | source

PowerShell:
  PS> textpics completion powershell | Out-String | Invoke-Expression
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

// =============================================================================
// Argument and Flag Completion
// =============================================================================

// completeCorpusThenFonts completes a text file for the first argument and
// a directory for the second.
func completeCorpusThenFonts(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return []string{"txt"}, cobra.ShellCompDirectiveFilterFileExt
	case 1:
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeFontDir completes a single font directory argument.
func completeFontDir(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeBuiltinFonts offers the builtin font names matching the prefix
// typed so far. Installed fonts are left to the user.
func completeBuiltinFonts(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range fonts.BuiltinNames() {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeUnderlineStyles offers the supported underline styles.
func completeUnderlineStyles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(pipeline.UnderlineAuto) + "\truled in generate, single in words",
		string(pipeline.UnderlineSingle) + "\tone line under the text",
		string(pipeline.UnderlineRuled) + "\trepeated lines like ruled paper",
	}, cobra.ShellCompDirectiveNoFileComp
}

// registerGenerateCompletions wires completions for generate and words.
func registerGenerateCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeCorpusThenFonts
	_ = cmd.RegisterFlagCompletionFunc("font", completeBuiltinFonts)
	_ = cmd.RegisterFlagCompletionFunc("underline-style", completeUnderlineStyles)
	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.MarkFlagDirname("out")
}
