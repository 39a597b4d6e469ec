package ui

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the shared CLI logger. Output is for humans at a terminal, so
// timestamps stay off.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})
