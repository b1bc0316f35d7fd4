// matter-binding-tool inspects and edits a node's persisted binding table.
//
// The table is read from a directory holding one file per storage key, in
// the same record layout a Matter node uses for its Binding cluster.
//
// Usage:
//
//	matter-binding-tool <command> [options] [args]
//
// Options (all commands):
//
//	-config    YAML config file (storage, capacity, log_level)
//	-storage   Storage directory (default: matter-kvs)
//	-capacity  Binding table capacity (default: 64)
//	-log-level Log level (default: warn)
//
// Example:
//
//	matter-binding-tool add-unicast -storage kvs -fabric 1 -local 1 -node 0x1122 -remote 2 -cluster 6
//	matter-binding-tool list -storage kvs
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/backkem/matter-binding/cmd/matter-binding-tool/commands"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return commands.ExitCommandError
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return commands.RunList(rest, stdout, stderr)
	case "add-unicast":
		return commands.RunAddUnicast(rest, stdout, stderr)
	case "add-group":
		return commands.RunAddGroup(rest, stdout, stderr)
	case "remove":
		return commands.RunRemove(rest, stdout, stderr)
	case "remove-fabric":
		return commands.RunRemoveFabric(rest, stdout, stderr)
	case "check":
		return commands.RunCheck(rest, stdout, stderr)
	case "dump":
		return commands.RunDump(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return commands.ExitSuccess
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return commands.ExitCommandError
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `matter-binding-tool - Matter binding table inspector

Usage:
  matter-binding-tool <command> [options] [args]

Commands:
  list            List bindings in table order (-yaml, -fabric)
  add-unicast     Add a binding to a node endpoint (-fabric -local -node -remote [-cluster])
  add-group       Add a binding to a group (-fabric -local -group [-cluster])
  remove <pos>    Remove the binding at a list position
  remove-fabric <index>
                  Remove every binding of a fabric
  check           Verify the table and report unreachable records (-prune)
  dump            Decode every stored binding record (-hex)

Options:
  -config     YAML config file
  -storage    Storage directory [default: matter-kvs]
  -capacity   Binding table capacity [default: 64]
  -log-level  disabled, error, warn, info, debug, trace [default: warn]`)
}
