package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

// @title Stock Ledger API
// @version 1.0
// @description Products, an append-only stock ledger and users, with live snapshots over websocket.
// @host localhost:10000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&serveCmd{}, "")
	subcommands.Register(&initCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
