package cli_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"repodeck/internal/cli"
)

func TestRunHelp(t *testing.T) {
	err := cli.New().Run([]string{"repodeck", "--log-output", "discard", "--help"})
	gt.NoError(t, err)
}

func TestRunInvalidLogLevel(t *testing.T) {
	err := cli.New().Run([]string{"repodeck", "--log-level", "bogus", "--log-output", "discard", "list"})
	gt.Error(t, err)
}
