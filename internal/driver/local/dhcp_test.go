package local

import (
	"context"
	"strings"
	"testing"

	"github.com/maxdollinger/berth/pkg/network"
)

func TestDHCPServerRoundTrip(t *testing.T) {
	d := NewDriver("devbox", t.TempDir(), nil)
	ctx := context.Background()

	srv := network.DHCPServer{IP: "172.28.128.2", Lower: "172.28.128.3", Upper: "172.28.128.254"}
	if err := d.CreateDHCPServer(ctx, "berth0", srv); err != nil {
		t.Fatal(err)
	}

	got, err := d.readDHCPServer("berth0")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != srv {
		t.Fatalf("got %+v, want %+v", got, srv)
	}
}

func TestReadDHCPServerMissing(t *testing.T) {
	d := NewDriver("devbox", t.TempDir(), nil)

	got, err := d.readDHCPServer("berth9")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil for unconfigured network, got %+v", got)
	}
}

func TestDnsmasqConf(t *testing.T) {
	conf := dnsmasqConf("berth0", network.DHCPServer{
		IP: "172.28.128.2", Lower: "172.28.128.3", Upper: "172.28.128.254",
	})

	for _, want := range []string{
		"interface=berth0",
		"listen-address=172.28.128.2",
		"dhcp-range=172.28.128.3,172.28.128.254,12h",
	} {
		if !strings.Contains(conf, want) {
			t.Errorf("conf missing %q:\n%s", want, conf)
		}
	}
}
