package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/backkem/matter-binding/pkg/storage"
)

// RunCheck loads the table, verifies the list and reports entry records
// that are no longer reachable from the list. With -prune those records
// are deleted.
func RunCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	var prune bool
	addCommonFlags(fs, &opts)
	fs.BoolVar(&prune, "prune", false, "Delete unreachable entry records")

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	s, err := openTable(opts.Config, stderr)
	if err != nil {
		fmt.Fprintf(stdout, "FAIL: %v\n", err)
		return ExitCheckFailed
	}
	if err := s.table.Check(); err != nil {
		fmt.Fprintf(stdout, "FAIL: %v\n", err)
		return ExitCheckFailed
	}

	orphans, err := unreachableRecords(s)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	for _, key := range orphans {
		if !prune {
			fmt.Fprintf(stdout, "unreachable record %s\n", key)
			continue
		}
		if err := s.store.Delete(key); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitCommandError
		}
		fmt.Fprintf(stdout, "pruned %s\n", key)
	}
	if len(orphans) > 0 && !prune {
		fmt.Fprintf(stdout, "FAIL: %d unreachable records (run with -prune to delete)\n", len(orphans))
		return ExitCheckFailed
	}

	fmt.Fprintf(stdout, "OK: %d bindings\n", s.table.Size())
	return ExitSuccess
}

// unreachableRecords lists entry record keys that the loaded list does not
// reference, such as records left behind by a failed tombstone delete.
func unreachableRecords(s *session) ([]string, error) {
	linked := map[string]bool{}
	for slot := range s.table.All() {
		linked[storage.BindingTableEntryKey(slot)] = true
	}

	keys, err := s.store.Keys(storage.BindingTablePrefix() + "/")
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, key := range keys {
		if !linked[key] && strings.Count(key, "/") == 2 {
			orphans = append(orphans, key)
		}
	}
	return orphans, nil
}
