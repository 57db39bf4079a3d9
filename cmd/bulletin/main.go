package main

import (
	"fmt"
	"os"

	bulletin "github.com/eringen/instantbulletin"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	bulletin.Version = version

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "render":
		err = runRender(os.Args[2:])
	case "init":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: bulletin init <file.yaml>")
			os.Exit(1)
		}
		err = runInit(os.Args[2])
	case "templates":
		printTemplates(os.Stdout)
	case "version":
		fmt.Printf("bulletin %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bulletin - Event bulletin designer built with Go, Echo, and templ

Usage:
  bulletin <command> [arguments]

Commands:
  serve                 Start the editor (configured from the environment)
  render [flags]        Render a YAML bulletin to png, pdf or html
  init <file.yaml>      Write the sample bulletin as a starting point
  templates             List the available layouts
  version               Print the bulletin version
  help                  Show this help message

Examples:
  SESSION_SECRET=change-me bulletin serve
  bulletin init summit.yaml
  bulletin render -in summit.yaml -format pdf -out summit.pdf`)
}
