package main

import (
	"io"

	"github.com/fd0/hcf/pkg/hcf"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:     "fmt [flags] file...",
	Example: "$ hcf fmt /etc/app/app.hcf > app.hcf.new",
	Short:   "Print files in normalized form",
	Long: `
The fmt command parses the files and prints the result in normalized form:
fields and keys sorted, comments removed and values escaped or quoted where
necessary. Parsing the output yields the same fields and values.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return FormatFiles(cmd.OutOrStdout(), args)
	},
}

func init() {
	RootCmd.AddCommand(fmtCmd)
}

// FormatFiles loads the files and writes them in normalized form to wr.
func FormatFiles(wr io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("no file specified, nothing to do")
	}

	opts, err := loadFiles(args)
	if err != nil {
		return err
	}
	defer opts.Destroy()

	level.Debug(logger).Log("msg", "format", "fields", opts.Len())

	return hcf.Format(wr, opts)
}
