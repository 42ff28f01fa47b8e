package main

import (
	"errors"
	"os"

	"github.com/moyoez/imgup/cli"
	"github.com/moyoez/imgup/tool"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrUploadFailed) {
			tool.DefaultLogger.Error(err)
		}
		os.Exit(1)
	}
}
