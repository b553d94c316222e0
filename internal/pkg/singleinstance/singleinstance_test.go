package singleinstance

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func pidfilePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "termgenie.pid")
}

func readPID(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatalf("pidfile content %q: %v", data, err)
	}
	return pid
}

func TestAcquireWritesOwnPID(t *testing.T) {
	path := pidfilePath(t)

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	defer guard.Release()

	if got := readPID(t, path); got != os.Getpid() {
		t.Fatalf("pidfile holds %d, want %d", got, os.Getpid())
	}
}

func TestAcquireOverwritesStalePidfile(t *testing.T) {
	path := pidfilePath(t)
	// A pid from the far end of the valid range is almost certainly unused.
	if err := os.WriteFile(path, []byte("4194000"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	defer guard.Release()

	if got := readPID(t, path); got != os.Getpid() {
		t.Fatalf("pidfile holds %d, want %d", got, os.Getpid())
	}
}

func TestAcquireToleratesGarbagePidfile(t *testing.T) {
	path := pidfilePath(t)
	if err := os.WriteFile(path, []byte("not a pid\n"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	defer guard.Release()

	if got := readPID(t, path); got != os.Getpid() {
		t.Fatalf("pidfile holds %d, want %d", got, os.Getpid())
	}
}

func TestReleaseRemovesOwnedPidfile(t *testing.T) {
	path := pidfilePath(t)

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	guard.Release()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("pidfile still present after Release: %v", err)
	}
}

func TestReleaseLeavesForeignPidfile(t *testing.T) {
	path := pidfilePath(t)

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}

	// Simulate a newer instance having taken over the file.
	if err := os.WriteFile(path, []byte("4194000"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	guard.Release()

	if got := readPID(t, path); got != 4194000 {
		t.Fatalf("pidfile holds %d, want takeover pid preserved", got)
	}
}
