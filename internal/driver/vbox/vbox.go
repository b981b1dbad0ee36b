// Package vbox implements the hypervisor driver on top of the
// VBoxManage command line tool.
package vbox

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Driver controls one machine through VBoxManage. Every call shells
// out; no state is cached between calls.
type Driver struct {
	vm  string
	exe string
	log *slog.Logger
}

func NewDriver(vmName string, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{vm: vmName, exe: "VBoxManage", log: log}
}

// run executes VBoxManage and returns its stdout. stderr travels with
// the error so failures surface the hypervisor's own message.
func (d *Driver) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, d.exe, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.log.Debug("vboxmanage", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", d.exe, args[0], err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
