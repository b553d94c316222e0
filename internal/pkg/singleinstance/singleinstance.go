// Package singleinstance enforces one running process per config directory
// through a pidfile. A newly started instance supersedes a live older one:
// the old process is asked to terminate and the pidfile is taken over.
package singleinstance

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/termgenie/termgenie/internal/domain"
)

const terminateWait = 2 * time.Second

// Guard owns the pidfile for the lifetime of the process.
type Guard struct {
	path string
}

// Acquire takes ownership of the pidfile at path. If another live instance
// holds it, that instance is sent SIGTERM and the file is overwritten once it
// exits (or after a short grace period).
func Acquire(path string) (*Guard, error) {
	if pid, ok := recordedPID(path); ok && pid != os.Getpid() {
		if alive(pid) {
			supersede(pid)
		}
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), domain.SecureFilePermissions); err != nil {
		return nil, fmt.Errorf("write pidfile %s: %w", path, err)
	}
	return &Guard{path: path}, nil
}

// Release removes the pidfile if this process still owns it.
func (g *Guard) Release() {
	pid, ok := recordedPID(g.path)
	if !ok || pid != os.Getpid() {
		return
	}
	os.Remove(g.path)
}

func recordedPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// alive probes the pid with signal 0. A stale pidfile left by a crashed
// process fails the probe and is simply overwritten.
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func supersede(pid int) {
	process, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return
	}
	deadline := time.Now().Add(terminateWait)
	for time.Now().Before(deadline) {
		if !alive(pid) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
