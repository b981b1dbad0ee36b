package vbox

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var ErrNotRunning = errors.New("machine is not running")

var vmStateRe = regexp.MustCompile(`(?m)^VMState="(.+?)"$`)

// State returns the VirtualBox machine state, e.g. "running" or
// "poweroff".
func (d *Driver) State(ctx context.Context) (string, error) {
	out, err := d.run(ctx, "showvminfo", d.vm, "--machinereadable")
	if err != nil {
		return "", err
	}

	match := vmStateRe.FindStringSubmatch(out)
	if match == nil {
		return "", fmt.Errorf("no VMState in showvminfo output for %s", d.vm)
	}
	return match[1], nil
}

// Start boots the machine headless.
func (d *Driver) Start(ctx context.Context) error {
	_, err := d.run(ctx, "startvm", d.vm, "--type", "headless")
	return err
}

// Stop sends an ACPI power button press.
func (d *Driver) Stop(ctx context.Context) error {
	_, err := d.run(ctx, "controlvm", d.vm, "acpipowerbutton")
	return err
}

// WaitRunning polls until the machine reports the running state.
func (d *Driver) WaitRunning(ctx context.Context) error {
	for {
		state, err := d.State(ctx)
		if err != nil {
			return err
		}
		if state == "running" {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s stuck in state %s", ErrNotRunning, d.vm, state)
		case <-time.After(time.Second):
		}
	}
}
