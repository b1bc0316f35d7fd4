package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/backkem/matter-binding/cmd/matter-binding-tool/commands"
)

func TestRun_Dispatch(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	if code := run([]string{"add-group", "-storage", dir, "-fabric", "1", "-group", "1"}, &stdout, &stderr); code != commands.ExitSuccess {
		t.Fatalf("add-group: exit %d, stderr: %s", code, stderr.String())
	}
	stdout.Reset()
	if code := run([]string{"list", "-storage", dir}, &stdout, &stderr); code != commands.ExitSuccess {
		t.Fatalf("list: exit %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Bindings: 1/64") {
		t.Errorf("unexpected list output: %s", stdout.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := run(nil, &stdout, &stderr); code != commands.ExitCommandError {
		t.Errorf("expected exit code %d, got %d", commands.ExitCommandError, code)
	}
	if code := run([]string{"frobnicate"}, &stdout, &stderr); code != commands.ExitCommandError {
		t.Errorf("expected exit code %d, got %d", commands.ExitCommandError, code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Errorf("expected unknown command message, got: %s", stderr.String())
	}

	stdout.Reset()
	if code := run([]string{"help"}, &stdout, &stderr); code != commands.ExitSuccess {
		t.Errorf("expected exit code %d, got %d", commands.ExitSuccess, code)
	}
	if !strings.Contains(stdout.String(), "remove-fabric") {
		t.Errorf("usage does not list remove-fabric: %s", stdout.String())
	}
}
