package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "questctl [command]",
		Short:         "Username and database tooling for questserver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newUsernameifyCmd(), newCheckCmd(), newMigrateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "questctl:", err)
		os.Exit(1)
	}
}
