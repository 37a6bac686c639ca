package main

import (
	"github.com/fd0/hcf/pkg/hcf"
	"github.com/go-kit/log/level"
)

func hcfLoadOptions() []hcf.LoadOption {
	return []hcf.LoadOption{hcf.WithLogger(logger)}
}

// loadFiles loads and merges the files given on the command line.
func loadFiles(filenames []string) (*hcf.Options, error) {
	level.Info(logger).Log("msg", "load files", "count", len(filenames))

	opts, err := hcf.LoadAll(filenames, hcfLoadOptions()...)
	if err != nil {
		opts.Destroy()
		return nil, err
	}

	level.Info(logger).Log("msg", "loaded", "fields", opts.Len())

	return opts, nil
}
