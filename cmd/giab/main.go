package main

import (
	"fmt"
	"os"

	"github.com/DeBrosOfficial/giab/pkg/cli"
	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	info := cli.VersionInfo{Version: version, Commit: commit, Date: date}

	if err := cli.Execute(info, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "giab: %v [%s]\n", err, gerrors.GetErrorCode(err))
		os.Exit(gerrors.ExitCode(err))
	}
}
