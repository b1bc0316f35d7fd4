package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/backkem/matter-binding/pkg/binding"
)

// RunAddUnicast appends a binding to a remote node's endpoint.
func RunAddUnicast(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("add-unicast", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	e := binding.Entry{Type: binding.TypeUnicast}
	addCommonFlags(fs, &opts)
	addEntryFlags(fs, &e)
	uintFlag(fs, "node", "Remote node ID", 64, func(v uint64) { e.NodeID = v })
	uintFlag(fs, "remote", "Remote endpoint", 16, func(v uint64) { e.RemoteEndpoint = uint16(v) })

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	return addEntry(opts, e, stdout, stderr)
}

// RunAddGroup appends a binding to a group.
func RunAddGroup(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("add-group", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	e := binding.Entry{Type: binding.TypeMulticast}
	addCommonFlags(fs, &opts)
	addEntryFlags(fs, &e)
	uintFlag(fs, "group", "Group ID", 16, func(v uint64) { e.GroupID = uint16(v) })

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	return addEntry(opts, e, stdout, stderr)
}

func addEntryFlags(fs *flag.FlagSet, e *binding.Entry) {
	uintFlag(fs, "fabric", "Fabric index (1-254)", 8, func(v uint64) { e.FabricIndex = uint8(v) })
	uintFlag(fs, "local", "Local endpoint", 16, func(v uint64) { e.LocalEndpoint = uint16(v) })
	uintFlag(fs, "cluster", "Cluster ID (default: all clusters)", 32, func(v uint64) { e.ClusterID = binding.Cluster(uint32(v)) })
}

func addEntry(opts Options, e binding.Entry, stdout, stderr io.Writer) int {
	if err := e.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	s, err := openTable(opts.Config, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if err := s.table.Add(e); err != nil {
		fmt.Fprintf(stderr, "Error: add binding: %v\n", err)
		return ExitCommandError
	}

	fmt.Fprintf(stdout, "Added %s (%d/%d)\n", e, s.table.Size(), s.table.Capacity())
	return ExitSuccess
}
