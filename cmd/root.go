// Package cmd wires the cobra command surface: `vigor [file]` opens the
// editor on a file (or an empty buffer), `vigor version` prints build
// info.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmf-san/vigor/internal/config"
	"github.com/bmf-san/vigor/pkg/editor"
)

var versionGetter = func() (string, string) { return "", "" }

// SetVersionGetter injects the version/commit resolver from main, which
// owns the ldflags variables.
func SetVersionGetter(fn func() (string, string)) { versionGetter = fn }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vigor [file]",
		Short: "A modal text editor",
		Long:  "vigor is a vi-style modal text editor: modal editing, operators and motions, registers, macros, search and ex commands.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm := config.NewManager()
			if err := cm.Load(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			readOnly, _ := cmd.Flags().GetBool("readonly")
			ed := editor.New()
			ed.ApplyConfig(cm.GetConfig())
			ed.SetReadOnly(readOnly)
			if len(args) == 1 {
				if err := ed.Open(args[0]); err != nil {
					return err
				}
				if cm.GetConfig().Options.SwapFile {
					if err := ed.StartSwap(); err != nil {
						return err
					}
					defer func() { _ = ed.CloseSwap() }()
				}
			}
			return runSession(ed, cm.GetConfig())
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.Flags().BoolP("readonly", "R", false, "open the file read-only")
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
