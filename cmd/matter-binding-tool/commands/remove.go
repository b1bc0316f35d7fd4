package commands

import (
	"flag"
	"fmt"
	"io"
)

// RunRemove removes the binding at a position in list order.
func RunRemove(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	addCommonFlags(fs, &opts)

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one position")
		return ExitCommandError
	}
	position, err := parseUintArg("position", fs.Arg(0), 8)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	s, err := openTable(opts.Config, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	it := s.table.Begin()
	for range position {
		it.Next()
	}
	e, ok := it.Entry()
	if !ok {
		fmt.Fprintf(stderr, "Error: no binding at position %d (size %d)\n", position, s.table.Size())
		return ExitCommandError
	}
	if err := s.table.RemoveAt(it); err != nil {
		fmt.Fprintf(stderr, "Error: remove binding: %v\n", err)
		return ExitCommandError
	}

	fmt.Fprintf(stdout, "Removed %s (%d/%d)\n", e, s.table.Size(), s.table.Capacity())
	return ExitSuccess
}

// RunRemoveFabric removes every binding of a fabric.
func RunRemoveFabric(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("remove-fabric", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	addCommonFlags(fs, &opts)

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one fabric index")
		return ExitCommandError
	}
	fabric, err := parseUintArg("fabric index", fs.Arg(0), 8)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	s, err := openTable(opts.Config, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	removed, err := s.table.RemoveFabric(uint8(fabric))
	if err != nil {
		fmt.Fprintf(stderr, "Error: removed %d bindings, then: %v\n", removed, err)
		return ExitCommandError
	}

	fmt.Fprintf(stdout, "Removed %d bindings of fabric %d\n", removed, fabric)
	return ExitSuccess
}
