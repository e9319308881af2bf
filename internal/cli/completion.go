package cli

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/pipeline"
)

// shellScripts maps each supported shell to its cobra script generator.
var shellScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Besides subcommands and flag names, the script completes the values of
--algorithm (shift, a, b) and --format, where each comma-separated entry
is offered from the formats not yet listed.

Typical setup:

  source <(gridraw completion bash)                      # bash, current shell
  gridraw completion zsh > "${fpath[1]}/_gridraw"        # zsh, new shells
  gridraw completion fish > ~/.config/fish/completions/gridraw.fish
  gridraw completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             slices.Sorted(maps.Keys(shellScripts)),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shellScripts[args[0]](cmd.Root(), c.out)
		},
	}
}

// registerValueCompletions attaches value completions to the algorithm and
// format flags of every subcommand of root.
func registerValueCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		algs, formats := graph.AllAlgorithms, slices.Sorted(maps.Keys(pipeline.ValidFormats))
		switch cmd.Name() {
		case "steps":
			algs = []string{graph.AlgorithmVisibility, graph.AlgorithmSlack}
		case "generate":
			formats = []string{pipeline.FormatJSON, pipeline.FormatText}
		}
		if cmd.Flags().Lookup("algorithm") != nil {
			_ = cmd.RegisterFlagCompletionFunc("algorithm", cobra.FixedCompletions(algs, cobra.ShellCompDirectiveNoFileComp))
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion(formats))
		}
	}
}

// formatCompletion completes the last entry of a comma-separated format
// list, skipping formats that already appear earlier in it.
func formatCompletion(formats []string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeFormatList(formats, toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

func completeFormatList(formats []string, toComplete string) []string {
	prefix, last := "", toComplete
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	used := strings.Split(prefix, ",")
	var out []string
	for _, f := range formats {
		if strings.HasPrefix(f, last) && !slices.Contains(used, f) {
			out = append(out, prefix+f)
		}
	}
	return out
}
