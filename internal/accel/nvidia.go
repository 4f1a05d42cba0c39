package accel

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// NvidiaSMI probes NVIDIA devices through the nvidia-smi binary.
type NvidiaSMI struct {
	// Bin is an explicit nvidia-smi path; empty means discover.
	Bin string
	// Run defaults to os/exec.
	Run Runner
}

// NewNvidiaSMI returns a prober using bin, or discovery when bin is empty.
func NewNvidiaSMI(bin string) *NvidiaSMI { return &NvidiaSMI{Bin: bin} }

func (n *NvidiaSMI) runner() Runner {
	if n.Run != nil {
		return n.Run
	}
	return execRunner
}

// binary resolves the nvidia-smi path. Empty means not installed.
func (n *NvidiaSMI) binary() string {
	if b := strings.TrimSpace(n.Bin); b != "" {
		if fi, err := os.Stat(b); err == nil && !fi.IsDir() {
			return b
		}
		return ""
	}
	for _, p := range []string{"/usr/bin/nvidia-smi", "/usr/local/nvidia/bin/nvidia-smi"} {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	if lp, err := exec.LookPath("nvidia-smi"); err == nil {
		return lp
	}
	return ""
}

// Available lists devices. A missing binary or a non-zero exit (driver not
// loaded, no devices) means no accelerator; failing to start the command is an error.
func (n *NvidiaSMI) Available(ctx context.Context) (bool, error) {
	bin := n.binary()
	if bin == "" {
		return false, nil
	}
	out, err := n.runner()(ctx, bin, "-L")
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return false, nil
		}
		return false, fmt.Errorf("nvidia-smi -L: %w", err)
	}
	return countDevices(out) > 0, nil
}

// TotalMemory queries memory.total (MiB) for the device at index.
func (n *NvidiaSMI) TotalMemory(ctx context.Context, index int) (uint64, error) {
	bin := n.binary()
	if bin == "" {
		return 0, ErrNoDevice(index)
	}
	out, err := n.runner()(ctx, bin,
		"--query-gpu=memory.total",
		"--format=csv,noheader,nounits",
		"-i", strconv.Itoa(index))
	if err != nil {
		return 0, fmt.Errorf("nvidia-smi memory query: %w", err)
	}
	mib, err := parseMemoryMiB(out)
	if err != nil {
		return 0, err
	}
	return mib * 1024 * 1024, nil
}

// countDevices counts "GPU <n>: ..." lines in nvidia-smi -L output.
func countDevices(out []byte) int {
	n := 0
	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		if strings.HasPrefix(strings.TrimSpace(s.Text()), "GPU ") {
			n++
		}
	}
	return n
}

// parseMemoryMiB reads the first non-empty line as an integer MiB value.
func parseMemoryMiB(out []byte) (uint64, error) {
	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, "MiB"))
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse nvidia-smi memory %q: %w", line, err)
		}
		return v, nil
	}
	return 0, fmt.Errorf("empty nvidia-smi memory output")
}
