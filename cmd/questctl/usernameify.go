package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questserver/internal/username"
)

func newUsernameifyCmd() *cobra.Command {
	var joined bool

	cmd := &cobra.Command{
		Use:   "usernameify <text>...",
		Short: "Print the username derived from each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if joined {
				args = []string{strings.Join(args, " ")}
			}
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), username.Slugify(arg))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&joined, "join", "j", false, "treat all arguments as one display name")
	return cmd
}
