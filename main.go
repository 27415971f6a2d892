package main

import (
	"os"

	"github.com/vdev-tools/vdev/cmd"
	"github.com/vdev-tools/vdev/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
