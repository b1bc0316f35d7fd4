// Package commands implements the matter-binding-tool subcommands.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pion/logging"

	"github.com/backkem/matter-binding/pkg/binding"
	"github.com/backkem/matter-binding/pkg/storage"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitCommandError = 1
	ExitCheckFailed  = 2
)

// Options are the flags shared by every subcommand.
type Options struct {
	ConfigPath string
	Config     Config
}

// addCommonFlags registers the shared flags on fs. Values given on the
// command line override the config file.
func addCommonFlags(fs *flag.FlagSet, opts *Options) {
	defaults := DefaultConfig()
	fs.StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&opts.Config.Storage, "storage", defaults.Storage, "Storage directory")
	fs.IntVar(&opts.Config.Capacity, "capacity", defaults.Capacity, "Binding table capacity")
	fs.StringVar(&opts.Config.LogLevel, "log-level", defaults.LogLevel, "Log level (disabled, error, warn, info, debug, trace)")
}

// parseArgs parses args into a fresh flag set and resolves the config file.
func parseArgs(fs *flag.FlagSet, opts *Options, args []string) error {
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.ConfigPath == "" {
		return opts.Config.Validate()
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if isFlagSet(fs, "storage") {
		cfg.Storage = opts.Config.Storage
	}
	if isFlagSet(fs, "capacity") {
		cfg.Capacity = opts.Config.Capacity
	}
	if isFlagSet(fs, "log-level") {
		cfg.LogLevel = opts.Config.LogLevel
	}
	opts.Config = cfg
	return opts.Config.Validate()
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// session is an opened binding table and its backing store.
type session struct {
	store *storage.FileStore
	table *binding.Table
}

func newLoggerFactory(cfg Config, stderr io.Writer) (logging.LoggerFactory, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	loggerFactory := logging.NewDefaultLoggerFactory()
	loggerFactory.Writer = stderr
	loggerFactory.DefaultLogLevel = level
	return loggerFactory, nil
}

// openStore opens the file-backed store without touching its contents.
func openStore(cfg Config, stderr io.Writer) (*storage.FileStore, logging.LoggerFactory, error) {
	loggerFactory, err := newLoggerFactory(cfg, stderr)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewFileStore(storage.FileStoreConfig{
		Dir:           cfg.Storage,
		LoggerFactory: loggerFactory,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, loggerFactory, nil
}

// openTable opens the store and loads the persisted table. A store without
// a list-info record is treated as an empty table.
func openTable(cfg Config, stderr io.Writer) (*session, error) {
	store, loggerFactory, err := openStore(cfg, stderr)
	if err != nil {
		return nil, err
	}

	table := binding.NewTable(binding.TableConfig{
		Capacity: cfg.Capacity,
		Storage:  store,
		OnCleanupError: func(index uint8, err error) {
			fmt.Fprintf(stderr, "Warning: stale record for slot %d left in storage: %v\n", index, err)
		},
		LoggerFactory: loggerFactory,
	})
	if err := table.LoadFromStorage(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load binding table: %w", err)
	}

	return &session{store: store, table: table}, nil
}

// uintFlag registers a flag holding an unsigned integer of the given bit
// size. Decimal and 0x-prefixed hex are accepted.
func uintFlag(fs *flag.FlagSet, name, usage string, bits int, set func(uint64)) {
	fs.Func(name, usage, func(s string) error {
		v, err := strconv.ParseUint(s, 0, bits)
		if err != nil {
			return fmt.Errorf("invalid value %q", s)
		}
		set(v)
		return nil
	})
}

// parseUintArg parses a positional unsigned integer argument.
func parseUintArg(name, s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}
