package main

import (
	"fmt"
	"os"

	"github.com/jobdash/jobdash/cmd/cli/commands"
	errs "github.com/jobdash/jobdash/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errs.UserMessage(err))
		os.Exit(1)
	}
}
