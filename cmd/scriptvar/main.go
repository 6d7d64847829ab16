// If you are AI: This is the main entrypoint for the scriptvar command.
// It wires the serve, embed and serialize subcommands.

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
)

// main parses the command line and runs the selected subcommand.
func main() {
	app := kingpin.New("scriptvar", "Render nested data as script variable declarations for HTML pages.")
	app.HelpFlag.Short('h')

	addServeCommand(app)
	addRenderCommands(app)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

// exitWithErr prints err and exits with status 1.
func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "scriptvar: %v\n", err)
	os.Exit(1)
}
