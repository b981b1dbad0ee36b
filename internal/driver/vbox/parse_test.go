package vbox

import (
	"testing"

	"github.com/maxdollinger/berth/pkg/network"
)

const bridgedifsOutput = `Name:            en0: Ethernet
GUID:            00306e65-0000-4000-8000-3c22fb96e531
DHCP:            Disabled
IPAddress:       192.168.1.17
NetworkMask:     255.255.255.0
IPV6Address:     fe80::1
IPV6NetworkMaskPrefixLength: 64
HardwareAddress: 3c:22:fb:96:e5:31
MediumType:      Ethernet
Wireless:        No
Status:          Up
VBoxNetworkName: HostInterfaceNetworking-en0: Ethernet

Name:            en1: Wi-Fi
GUID:            10306e65-0000-4000-8000-3c22fb96e532
DHCP:            Disabled
IPAddress:       0.0.0.0
NetworkMask:     0.0.0.0
HardwareAddress: 3c:22:fb:96:e5:32
MediumType:      Ethernet
Wireless:        Yes
Status:          Down
VBoxNetworkName: HostInterfaceNetworking-en1: Wi-Fi
`

func TestParseBlocks(t *testing.T) {
	blocks := parseBlocks(bridgedifsOutput)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}

	if blocks[0]["Name"] != "en0: Ethernet" {
		t.Errorf("Name = %q, colon inside the value must survive", blocks[0]["Name"])
	}
	if blocks[0]["Status"] != "Up" || blocks[1]["Status"] != "Down" {
		t.Errorf("Status parsing broken: %v / %v", blocks[0]["Status"], blocks[1]["Status"])
	}
	if blocks[1]["IPAddress"] != "0.0.0.0" {
		t.Errorf("IPAddress = %q", blocks[1]["IPAddress"])
	}
}

func TestCreatedInterfaceRe(t *testing.T) {
	out := "0%...10%...100%\nInterface 'vboxnet2' was successfully created\n"
	match := createdInterfaceRe.FindStringSubmatch(out)
	if match == nil || match[1] != "vboxnet2" {
		t.Fatalf("match = %v", match)
	}
}

const showvminfoOutput = `name="devbox"
VMState="running"
nic1="nat"
nictype1="82540EM"
nic2="hostonly"
hostonlyadapter2="vboxnet0"
nic3="none"
nic4="bridged"
bridgeadapter4="en0: Ethernet"
nic5="none"
nic6="none"
nic7="none"
nic8="none"
`

func TestNicLineRe(t *testing.T) {
	matches := nicLineRe.FindAllStringSubmatch(showvminfoOutput, -1)
	if len(matches) != 8 {
		t.Fatalf("nic lines = %d, want 8", len(matches))
	}

	kinds := map[string]network.AdapterKind{}
	for _, m := range matches {
		kinds[m[1]] = network.AdapterKind(m[2])
	}
	if kinds["1"] != network.KindNat || kinds["2"] != network.KindHostOnly ||
		kinds["3"] != network.KindNone || kinds["4"] != network.KindBridged {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestVMStateRe(t *testing.T) {
	match := vmStateRe.FindStringSubmatch(showvminfoOutput)
	if match == nil || match[1] != "running" {
		t.Fatalf("match = %v", match)
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08:00:27:a1:b2:c3", "080027A1B2C3", false},
		{"08-00-27-A1-B2-C3", "080027A1B2C3", false},
		{"080027A1B2C3", "080027A1B2C3", false},
		{"0800.27a1.b2c3", "080027A1B2C3", false},
		{"08:00:27:a1:b2", "", true},
		{"08:00:27:a1:b2:zz", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeMAC(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeMAC(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeMAC(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
