// Package completion generates shell completion scripts for the restock CLI.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// Shells lists the supported shells in help order.
var Shells = []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// Generate writes the completion script for shell to w.
func Generate(root *cobra.Command, w io.Writer, shell string) error {
	var err error
	switch shell {
	case ShellBash:
		err = root.GenBashCompletionV2(w, true)
	case ShellZsh:
		err = root.GenZshCompletion(w)
	case ShellFish:
		err = root.GenFishCompletion(w, true)
	case ShellPowerShell:
		err = root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q: must be one of %v", shell, Shells)
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s completion: %w", shell, err)
	}
	return nil
}

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Example: `  restock completion bash > /etc/bash_completion.d/restock
  restock completion zsh > "${fpath[1]}/_restock"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: Shells,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(cmd.Root(), cmd.OutOrStdout(), args[0])
		},
	}
}
