// Command mesh-log is a tool for viewing and analyzing mesh node telemetry logs.
//
// Log files are created by running mesh-node with the -protocol-log flag.
//
// Usage:
//
//	mesh-log <command> [flags] <file.mlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	mesh-log view node.mlog
//
//	# View only model-layer events
//	mesh-log view -layer model node.mlog
//
//	# View only outgoing status messages of one node
//	mesh-log view -direction out -node-id dddd0011-... node.mlog
//
//	# Export to CSV
//	mesh-log export -format csv -o node.csv node.mlog
//
//	# Keep only configuration events
//	mesh-log filter -category config -o config.mlog node.mlog
//
//	# Show statistics
//	mesh-log stats node.mlog
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/cmd/mesh-log/commands"
)

// command is one mesh-log subcommand.
type command struct {
	name     string
	synopsis string
	args     string
	run      func(fs *flag.FlagSet, args []string) error
}

var commandList = []command{
	{"view", "View log file in human-readable format", "[flags] <file.mlog>", runView},
	{"export", "Export log file to JSON or CSV format", "[flags] <file.mlog>", runExport},
	{"filter", "Filter log file and write to new file", "-o <out.mlog> [flags] <file.mlog>", runFilter},
	{"stats", "Show statistics about the log file", "<file.mlog>", runStats},
}

// errUsage makes main print the command usage.
var errUsage = errors.New("usage")

func usage() string {
	var b strings.Builder
	b.WriteString("mesh-log - Mesh Node Telemetry Log Analyzer\n\nUsage:\n  mesh-log <command> [flags] <file.mlog>\n\nCommands:\n")
	for _, c := range commandList {
		fmt.Fprintf(&b, "  %-8s %s\n", c.name, c.synopsis)
	}
	b.WriteString("\nUse \"mesh-log <command> -help\" for more information about a command.\n")
	return b.String()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage())
		os.Exit(1)
	}

	name := os.Args[1]
	switch name {
	case "-h", "-help", "--help", "help":
		fmt.Print(usage())
		return
	}

	for _, c := range commandList {
		if c.name != name {
			continue
		}
		fs := flag.NewFlagSet(c.name, flag.ExitOnError)
		fs.Usage = func() {
			fmt.Fprintf(os.Stderr, "mesh-log %s - %s\n\nUsage:\n  mesh-log %s %s\n\nFlags:\n", c.name, c.synopsis, c.name, c.args)
			fs.PrintDefaults()
		}

		err := c.run(fs, os.Args[2:])
		if errors.Is(err, errUsage) {
			fs.Usage()
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
	fmt.Fprint(os.Stderr, usage())
	os.Exit(1)
}

// filterFlags registers the event selection flags shared by view and filter.
func filterFlags(fs *flag.FlagSet, opts *commands.FilterOptions) {
	fs.StringVar(&opts.NodeID, "node-id", "", "Filter by node ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (stack, model, store)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out, local)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (message, state, config, error)")
}

// parseArgs parses args and returns the log file path.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		return "", errUsage
	}
	return fs.Arg(0), nil
}

func runView(fs *flag.FlagSet, args []string) error {
	var opts commands.FilterOptions
	filterFlags(fs, &opts)

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	return commands.RunView(path, opts, os.Stdout)
}

func runExport(fs *flag.FlagSet, args []string) error {
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output)
}

func runFilter(fs *flag.FlagSet, args []string) error {
	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	filterFlags(fs, &opts)

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		return errUsage
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
	return nil
}

func runStats(fs *flag.FlagSet, args []string) error {
	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	return commands.RunStats(path, os.Stdout)
}
