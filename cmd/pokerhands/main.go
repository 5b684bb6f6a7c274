package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Classify hands given as arguments or one per line on stdin"`
	Winners WinnersCmd       `cmd:"" help:"Print the winning hands"`
	Deal    DealCmd          `cmd:"" help:"Deal one round to a table and show it"`
	Play    PlayCmd          `cmd:"" help:"Run an interactive table in the terminal"`
	Serve   ServeCmd         `cmd:"" help:"Share a table over websockets"`
	History HistoryCmd       `cmd:"" help:"List the recorded rounds of a game"`
}

func main() {
	cli := CLI{Globals: Globals{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}}
	ctx := kong.Parse(&cli,
		kong.Name("pokerhands"),
		kong.Description("Five-card poker hand evaluator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// Globals are flags and streams shared by every command.
type Globals struct {
	Config   string `short:"c" default:"pokerhands.hcl" help:"HCL configuration file"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`

	Stdin  io.Reader `kong:"-"`
	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}
