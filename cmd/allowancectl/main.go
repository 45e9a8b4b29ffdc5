// Command allowancectl intercambia paquetes de dotación y consulta faltantes sin pasar por la API.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&exportCmd{}, "dotaciones")
	commander.Register(&importCmd{}, "dotaciones")
	commander.Register(&listCmd{}, "dotaciones")
	commander.Register(&statusCmd{}, "inventario")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
