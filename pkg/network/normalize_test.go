package network

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeBridgedDefaults(t *testing.T) {
	cfg := normalizeBridged(Options{})

	if !cfg.AutoConfig {
		t.Error("AutoConfig should default to true")
	}
	if cfg.Bridge != "" || cfg.MAC != "" || cfg.NICType != "" {
		t.Errorf("expected empty adapter knobs, got %+v", cfg)
	}
	if cfg.UseDHCPDefaultRoute {
		t.Error("UseDHCPDefaultRoute should default to false")
	}
}

func TestNormalizeBridgedOverrides(t *testing.T) {
	off := false
	cfg := normalizeBridged(Options{
		AutoConfig:          &off,
		Bridge:              "en0",
		MAC:                 "080027aabbcc",
		NICType:             "virtio",
		UseDHCPDefaultRoute: true,
	})

	if cfg.AutoConfig {
		t.Error("explicit AutoConfig=false lost")
	}
	if cfg.Bridge != "en0" || cfg.MAC != "080027aabbcc" || cfg.NICType != "virtio" {
		t.Errorf("overrides lost: %+v", cfg)
	}
	if !cfg.UseDHCPDefaultRoute {
		t.Error("UseDHCPDefaultRoute override lost")
	}
}

func TestNormalizeHostOnlyStaticDerivation(t *testing.T) {
	driver := &fakeDriver{}
	cfg, err := normalizeHostOnly(context.Background(), driver, Options{IP: "192.168.33.10"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Type != HostOnlyStatic {
		t.Errorf("Type = %q, want static", cfg.Type)
	}
	if cfg.Netmask != "255.255.255.0" {
		t.Errorf("Netmask = %q, want default", cfg.Netmask)
	}
	if cfg.NetAddr != "192.168.33.0" {
		t.Errorf("NetAddr = %q, want 192.168.33.0", cfg.NetAddr)
	}
	if cfg.AdapterIP != "192.168.33.1" {
		t.Errorf("AdapterIP = %q, want 192.168.33.1", cfg.AdapterIP)
	}
	if cfg.DHCPIP != "" {
		t.Errorf("static network should not derive DHCP bounds, got %q", cfg.DHCPIP)
	}
}

func TestNormalizeHostOnlyDHCPDefaults(t *testing.T) {
	driver := &fakeDriver{}
	cfg, err := normalizeHostOnly(context.Background(), driver, Options{Type: "dhcp"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.IP != "172.28.128.1" {
		t.Errorf("IP = %q, want 172.28.128.1", cfg.IP)
	}
	if cfg.AdapterIP != "172.28.128.1" {
		t.Errorf("AdapterIP = %q, want 172.28.128.1", cfg.AdapterIP)
	}
	if cfg.DHCPIP != "172.28.128.2" {
		t.Errorf("DHCPIP = %q, want 172.28.128.2", cfg.DHCPIP)
	}
	if cfg.DHCPLower != "172.28.128.3" {
		t.Errorf("DHCPLower = %q, want 172.28.128.3", cfg.DHCPLower)
	}
	if cfg.DHCPUpper != "172.28.128.254" {
		t.Errorf("DHCPUpper = %q, want 172.28.128.254", cfg.DHCPUpper)
	}
}

func TestNormalizeHostOnlyExplicitBoundsKept(t *testing.T) {
	driver := &fakeDriver{}
	cfg, err := normalizeHostOnly(context.Background(), driver, Options{
		Type:      "dhcp",
		IP:        "10.10.10.1",
		AdapterIP: "10.10.10.5",
		DHCPLower: "10.10.10.100",
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AdapterIP != "10.10.10.5" {
		t.Errorf("explicit AdapterIP lost: %q", cfg.AdapterIP)
	}
	if cfg.DHCPLower != "10.10.10.100" {
		t.Errorf("explicit DHCPLower lost: %q", cfg.DHCPLower)
	}
	if cfg.DHCPIP != "10.10.10.2" {
		t.Errorf("DHCPIP = %q, want derived 10.10.10.2", cfg.DHCPIP)
	}
}

func TestNormalizeHostOnlySubnetCollision(t *testing.T) {
	driver := &fakeDriver{
		bridged: []BridgedInterface{
			{Name: "eth0", IP: "192.168.33.7", Netmask: "255.255.255.0", Status: "Up"},
		},
	}

	_, err := normalizeHostOnly(context.Background(), driver, Options{IP: "192.168.33.10"})
	if !errors.Is(err, ErrSubnetCollision) {
		t.Fatalf("expected ErrSubnetCollision, got %v", err)
	}
}

func TestNormalizeHostOnlyDownInterfaceDoesNotCollide(t *testing.T) {
	driver := &fakeDriver{
		bridged: []BridgedInterface{
			{Name: "eth0", IP: "192.168.33.7", Netmask: "255.255.255.0", Status: "Down"},
		},
	}

	if _, err := normalizeHostOnly(context.Background(), driver, Options{IP: "192.168.33.10"}); err != nil {
		t.Fatalf("down interface must not collide: %v", err)
	}
}

func TestNormalizeNatDiscardsOptions(t *testing.T) {
	on := true
	cfg := normalizeNat(Options{AutoConfig: &on, IP: "1.2.3.4", Bridge: "eth0"})

	if cfg.AutoConfig {
		t.Error("NAT AutoConfig must always be false")
	}
}
