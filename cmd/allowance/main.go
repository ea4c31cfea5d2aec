package main

import (
	"github.com/alecthomas/kong"
)

var cli struct {
	Serve ServeCmd `cmd:"" default:"1" help:"Run the allowance server."`
	Seed  SeedCmd  `cmd:"" help:"Create the initial admin account."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("allowance"),
		kong.Description("A household allowance ledger with daily income and month-end interest."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
