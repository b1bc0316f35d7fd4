package commands

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/backkem/matter-binding/pkg/binding"
	"github.com/backkem/matter-binding/pkg/storage"
)

// RunDump decodes every binding record in the store, reachable or not.
// It reads the store directly, so it also works on tables that fail to load.
func RunDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	var raw bool
	addCommonFlags(fs, &opts)
	fs.BoolVar(&raw, "hex", false, "Also print the raw TLV bytes")

	if err := parseArgs(fs, &opts, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	store, _, err := openStore(opts.Config, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	keys, err := store.Keys(storage.BindingTablePrefix())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	for _, key := range keys {
		data, err := store.Get(key)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitCommandError
		}
		fmt.Fprintf(stdout, "%-8s %s\n", key, describeRecord(key, data))
		if raw {
			fmt.Fprintf(stdout, "         %s\n", hex.EncodeToString(data))
		}
	}
	return ExitSuccess
}

func describeRecord(key string, data []byte) string {
	if key == storage.BindingTableKey() {
		info, err := binding.UnmarshalListInfo(data)
		if err != nil {
			return fmt.Sprintf("list info: %v", err)
		}
		return fmt.Sprintf("list info version=%d head=%s", info.Version, slotString(info.Head))
	}

	e, next, err := binding.UnmarshalEntryRecord(data)
	if err != nil {
		return fmt.Sprintf("entry: %v", err)
	}
	return fmt.Sprintf("%s next=%s", e, slotString(next))
}

func slotString(slot uint8) string {
	if slot == binding.NullIndex {
		return "null"
	}
	return fmt.Sprintf("%d", slot)
}
