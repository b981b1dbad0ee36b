package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maxdollinger/berth/pkg/fsutil"
	"github.com/maxdollinger/berth/pkg/network"
)

// CreateDHCPServer records the server bounds and writes a dnsmasq
// fragment for the bridge. The dnsmasq instance itself is run by the
// host's service manager; berth only owns the configuration.
func (d *Driver) CreateDHCPServer(ctx context.Context, networkName string, server network.DHCPServer) error {
	if err := os.MkdirAll(filepath.Dir(d.dhcpStatePath(networkName)), 0o755); err != nil {
		return fmt.Errorf("create dhcp state dir: %w", err)
	}

	if err := fsutil.WriteJSONAtomic(d.dhcpStatePath(networkName), server, 0o644); err != nil {
		return fmt.Errorf("record dhcp server: %w", err)
	}

	conf := dnsmasqConf(networkName, server)
	if err := fsutil.WriteFileAtomic(d.dnsmasqConfPath(networkName), []byte(conf), 0o644); err != nil {
		return fmt.Errorf("write dnsmasq config: %w", err)
	}

	d.log.Info("configured DHCP server", "network", networkName, "range", server.Lower+"-"+server.Upper)
	return nil
}

// readDHCPServer loads the recorded server of a network, or nil when
// none was ever configured.
func (d *Driver) readDHCPServer(networkName string) (*network.DHCPServer, error) {
	data, err := os.ReadFile(d.dhcpStatePath(networkName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var server network.DHCPServer
	if err := json.Unmarshal(data, &server); err != nil {
		return nil, fmt.Errorf("decode dhcp record for %s: %w", networkName, err)
	}
	return &server, nil
}

func dnsmasqConf(networkName string, server network.DHCPServer) string {
	return fmt.Sprintf(`# managed by berth, do not edit
interface=%s
bind-interfaces
listen-address=%s
dhcp-range=%s,%s,12h
`, networkName, server.IP, server.Lower, server.Upper)
}
