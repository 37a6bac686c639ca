package main

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var version = "compiled manually"
var compiledAt = "unknown time"

var (
	verboseOutput bool
	debugOutput   bool
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verboseOutput,
		"verbose", "v", false, "log what is loaded")
	RootCmd.PersistentFlags().BoolVar(&debugOutput,
		"debug", false, "log parser diagnostics")
}

// logger is shared by the commands and the parser. Warnings are always
// written, info messages with --verbose and debug messages with --debug.
var logger = log.NewNopLogger()

func setupLogger(wr io.Writer) {
	allowed := level.AllowWarn()
	switch {
	case debugOutput:
		allowed = level.AllowDebug()
	case verboseOutput:
		allowed = level.AllowInfo()
	}

	logger = level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(wr)), allowed)
}
