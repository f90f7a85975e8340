package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/thumbgrid/cmd"
	"github.com/lepinkainen/thumbgrid/config"
	"github.com/lepinkainen/thumbgrid/types"
	"github.com/lepinkainen/thumbgrid/ui"
)

var Version = "dev"

type CLI struct {
	LogLevel string           `help:"Log level" default:"info" enum:"debug,info,warn,error"`
	Config   kong.ConfigFlag  `help:"Load flag defaults from a TOML file"`
	Version  kong.VersionFlag `help:"Print version and exit"`

	Process cmd.ProcessCmd `cmd:"" default:"withargs" help:"Convert videos and generate grid thumbnails (default)"`
	Check   cmd.CheckCmd   `cmd:"" help:"Check that ffmpeg and ffprobe are installed"`
	Similar cmd.SimilarCmd `cmd:"" help:"Find visually similar videos by their thumbnails"`
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("thumbgrid"),
		kong.Description("Normalize a video collection and generate frame grid thumbnails."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, append(options(), kong.Configuration(config.TOML, config.DefaultPath))...)

	logger, err := ui.NewLogger(os.Stderr, cli.LogLevel)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&types.AppContext{Version: Version, Logger: logger})
	ctx.FatalIfErrorf(err)
}
