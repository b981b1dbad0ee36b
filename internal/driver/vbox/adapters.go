package vbox

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/maxdollinger/berth/pkg/network"
)

// showvminfo --machinereadable emits one line per adapter slot:
//
//	nic3="hostonly"
var nicLineRe = regexp.MustCompile(`(?m)^nic(\d+)="(.+?)"$`)

// LiveAdapters enumerates the adapter slots of the (running) machine.
func (d *Driver) LiveAdapters(ctx context.Context) ([]network.VMAdapter, error) {
	out, err := d.run(ctx, "showvminfo", d.vm, "--machinereadable")
	if err != nil {
		return nil, err
	}

	var adapters []network.VMAdapter
	for _, match := range nicLineRe.FindAllStringSubmatch(out, -1) {
		slot, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		adapters = append(adapters, network.VMAdapter{
			Slot: slot,
			Kind: network.AdapterKind(match[2]),
		})
	}

	return adapters, nil
}

// EnableAdapters applies the resolved descriptors with one modifyvm
// invocation. The machine must be powered off.
func (d *Driver) EnableAdapters(ctx context.Context, adapters []network.Adapter) error {
	if len(adapters) == 0 {
		return nil
	}

	args := []string{"modifyvm", d.vm}
	for _, adapter := range adapters {
		n := strconv.Itoa(adapter.Slot)
		args = append(args, "--nic"+n, string(adapter.Kind))

		switch adapter.Kind {
		case network.KindBridged:
			args = append(args, "--bridgeadapter"+n, adapter.Bridge)
		case network.KindHostOnly:
			args = append(args, "--hostonlyadapter"+n, adapter.HostOnly)
		}

		if adapter.MAC != "" {
			mac, err := NormalizeMAC(adapter.MAC)
			if err != nil {
				return fmt.Errorf("adapter %d: %w", adapter.Slot, err)
			}
			args = append(args, "--macaddress"+n, mac)
		}
		if adapter.NICType != "" {
			nicType := adapter.NICType
			if hw, ok := NICHardware[nicType]; ok {
				nicType = hw
			}
			args = append(args, "--nictype"+n, nicType)
		}
	}

	_, err := d.run(ctx, args...)
	return err
}
