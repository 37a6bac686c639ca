package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/fd0/hcf/internal/config"
	"github.com/fd0/hcf/pkg/hcf"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show [flags] file...",
	Example: "$ hcf show /etc/app/app.hcf",
	Short:   "Parse and show files",
	Long: `
The show command parses the files and prints all fields with their entries.
When several files are given, they are merged: entries from later files replace
those with the same key from earlier files.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ShowFiles(cmd.OutOrStdout(), args)
	},
}

var (
	// output format, "text" or "table"
	showFormat string

	// print values as quoted Go strings
	quoteValues bool
)

func init() {
	RootCmd.AddCommand(showCmd)

	flags := showCmd.Flags()
	flags.StringVarP(&showFormat, "format", "f", "text", "output format: text or table")
	bindConfigValue(flags.Lookup("format"), func(c config.Config) string { return c.Format })

	flags.BoolVarP(&quoteValues, "quote", "q", false, "print values quoted, showing control characters")
}

var (
	printField = color.New(color.FgHiBlue, color.Bold).FprintfFunc()
	printKey   = color.New(color.FgHiRed).FprintfFunc()
)

func displayValue(v string) string {
	if quoteValues {
		return strconv.Quote(v)
	}
	return v
}

func showText(wr io.Writer, opts *hcf.Options) {
	for _, name := range opts.Fields() {
		field, _ := opts.Field(name)

		printField(wr, "%s:\n", name)
		for _, key := range field.Keys() {
			value, _ := field.Value(key)
			fmt.Fprint(wr, "    ")
			printKey(wr, "%-10s", key)
			fmt.Fprintf(wr, " %s\n", displayValue(value))
		}
	}
}

func showTable(wr io.Writer, opts *hcf.Options) {
	x := table.NewWriter()
	x.AppendHeader(table.Row{"field", "key", "value"})

	for _, name := range opts.Fields() {
		field, _ := opts.Field(name)
		for _, key := range field.Keys() {
			value, _ := field.Value(key)
			x.AppendRow(table.Row{name, key, displayValue(value)})
		}
	}

	_, _ = io.WriteString(wr, x.Render()+"\n")
}

// ShowFiles loads the files and prints their contents to wr.
func ShowFiles(wr io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("no file specified, nothing to do")
	}

	opts, err := loadFiles(args)
	if err != nil {
		return err
	}
	defer opts.Destroy()

	switch showFormat {
	case "text":
		showText(wr, opts)
	case "table":
		showTable(wr, opts)
	default:
		return errors.Errorf("unknown output format %q", showFormat)
	}

	return nil
}
