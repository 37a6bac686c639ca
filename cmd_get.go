package main

import (
	"fmt"
	"io"

	"github.com/fd0/hcf/internal/config"
	"github.com/fd0/hcf/pkg/hcf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:     "get [flags] file field key",
	Example: "$ hcf get /etc/app/app.hcf server host",
	Short:   "Print a single value",
	Long: `
The get command prints the value of key in the given field. If the value does
not exist, the default value is printed if one is set, otherwise an error is
returned.
`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		hasDefault := defaultValue != "" || cmd.Flags().Changed("default")
		return GetValue(cmd.OutOrStdout(), args[0], args[1], args[2], hasDefault)
	},
}

var defaultValue string

func init() {
	RootCmd.AddCommand(getCmd)

	flags := getCmd.Flags()
	flags.StringVarP(&defaultValue, "default", "d", "", "print this value if the key is not found")
	bindConfigValue(flags.Lookup("default"), func(c config.Config) string { return c.Default })
}

// GetValue prints the value of key in field from the file.
func GetValue(wr io.Writer, filename, field, key string, hasDefault bool) error {
	opts, err := hcf.Load(filename, hcfLoadOptions()...)
	if err != nil {
		return err
	}
	defer opts.Destroy()

	if hasDefault {
		fmt.Fprintln(wr, opts.GetDefault(field, key, defaultValue))
		return nil
	}

	if _, ok := opts.Field(field); !ok {
		return errors.Errorf("field %v not found in %v", field, filename)
	}

	value, ok := opts.Get(field, key)
	if !ok {
		return errors.Errorf("key %v not found in field %v", key, field)
	}

	fmt.Fprintln(wr, value)
	return nil
}
