package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the base command when no other command has been specified.
var RootCmd = &cobra.Command{
	Use:   "hcf",
	Short: "inspect hierarchical config files",
	Long: `
hcf reads files in the hierarchical config format, where named fields hold
key/value entries:

    server:
        host example.com
        banner "welcome // not a comment"

It prints the parsed fields, looks up single values and writes files back in
a normalized form.
`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: parseConfig,
}

func main() {
	if cmd, err := RootCmd.ExecuteC(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		cmd.Usage()
		os.Exit(1)
	}
}
