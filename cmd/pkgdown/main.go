package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/DataStrategist/pkgdown/cmd/pkgdown/commands"
	"github.com/DataStrategist/pkgdown/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pkgdown"),
		kong.Description("Build a static documentation website for a source package."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("pkgdown %s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime)},
	)
	err := ctx.Run(&commands.Global{})
	ctx.FatalIfErrorf(err)
}
