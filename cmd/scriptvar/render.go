// If you are AI: This file implements the embed and serialize subcommands.
// Both read one JSON or YAML document from a file or stdin and print the result.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/core/value"
)

// renderCommand renders a single document to stdout.
type renderCommand struct {
	embed      bool
	file       *string
	format     *string
	varName    *string
	strictNull *bool
	strict     *bool
	maxDepth   *int

	stdin  io.Reader
	stdout io.Writer
}

// run decodes the input and writes the serialized or embedded text.
func (cmd *renderCommand) run(_ *kingpin.ParseContext) error {
	if cmd.embed && !jsvar.ValidVarName(*cmd.varName) {
		return fmt.Errorf("--var %q is not a valid identifier", *cmd.varName)
	}

	v, err := cmd.decode()
	if err != nil {
		return err
	}

	serializer := jsvar.New(jsvar.Options{
		StrictNull: *cmd.strictNull,
		Strict:     *cmd.strict,
		MaxDepth:   *cmd.maxDepth,
	})

	var out string
	if cmd.embed {
		out, err = serializer.Embed(v, *cmd.varName)
	} else {
		out, err = serializer.Serialize(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.stdout, out)
	return err
}

// decode reads the input document, picking the format from the flag or extension.
func (cmd *renderCommand) decode() (value.Value, error) {
	var format value.Format
	var err error
	switch {
	case *cmd.format != "":
		format, err = value.ParseFormat(*cmd.format)
	case *cmd.file == "-":
		format = value.FormatJSON
	default:
		format, err = value.FormatFromPath(*cmd.file)
	}
	if err != nil {
		return nil, err
	}

	r := cmd.stdin
	if *cmd.file != "-" {
		f, err := os.Open(*cmd.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	return value.Decode(r, format)
}

// addRenderCommands registers the embed and serialize subcommands.
func addRenderCommands(app *kingpin.Application) {
	addRenderCommand(app, false, "serialize", "Print the serialized text of a JSON or YAML document.")
	addRenderCommand(app, true, "embed", "Print a <script> variable declaration for a JSON or YAML document.")
}

// addRenderCommand registers one render subcommand reading from stdin and writing to stdout.
func addRenderCommand(app *kingpin.Application, embed bool, name, help string) *renderCommand {
	cmd := &renderCommand{embed: embed, stdin: os.Stdin, stdout: os.Stdout}
	c := app.Command(name, help).Action(cmd.run)
	cmd.file = c.Arg("file", "Input file, - for stdin.").Default("-").String()
	cmd.format = c.Flag("format", "Input format: json or yaml. Defaults to the file extension, json for stdin.").Short('f').String()
	cmd.varName = c.Flag("var", "Variable name to declare.").Default(jsvar.DefaultVarName).String()
	cmd.strictNull = c.Flag("strict-null", "Emit nested nulls as null instead of {}.").Bool()
	cmd.strict = c.Flag("strict", "Reject values that have no literal form.").Bool()
	cmd.maxDepth = c.Flag("max-depth", "Reject nesting deeper than this, 0 for unlimited.").Default("0").Int()
	return cmd
}
