package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play a batch of bot-only games and report statistics"`
	Play     PlayCmd          `cmd:"" help:"Play a game at the terminal against bots"`
	Show     ShowCmd          `cmd:"" help:"Render a saved game"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("azul"),
		kong.Description("Deterministic tile-drafting engine with bot players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
