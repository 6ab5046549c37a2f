package main

import (
	"bufio"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"questserver/internal/username"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [name]...",
		Short: "Run names through one username gate, as if typed into a single form",
		Long: `Run each name through the same username gate in order, then through the
server policy. With no arguments, names are read from stdin, one per line.
A name equal to the one before it is suppressed, like a repeated keystroke.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					names = append(names, sc.Text())
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			v := username.NewValidator()
			for _, name := range names {
				d := v.Check(name)
				detail := d.Feedback.Text
				if d.Kind == username.Allow {
					detail = "policy ok"
					if err := username.Validate(name); err != nil {
						detail = "policy: " + err.Error()
					}
				}
				fmt.Fprintf(tw, "%q\t%s\t%s\n", name, d.Kind, detail)
			}
			return tw.Flush()
		},
	}
}
