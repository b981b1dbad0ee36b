package vbox

import (
	"fmt"
	"strings"
)

// NormalizeMAC converts a MAC address in any common notation to the
// bare uppercase hex form VBoxManage expects, e.g.
// "08:00:27:a1:b2:c3" -> "080027A1B2C3".
func NormalizeMAC(mac string) (string, error) {
	cleaned := strings.ToUpper(strings.NewReplacer(":", "", "-", "", ".", "").Replace(mac))

	if len(cleaned) != 12 {
		return "", fmt.Errorf("invalid MAC address %q", mac)
	}
	for _, r := range cleaned {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return "", fmt.Errorf("invalid MAC address %q", mac)
		}
	}

	return cleaned, nil
}

// NICHardware names accepted by --nictype, per VirtualBox.
var NICHardware = map[string]string{
	"amd":        "Am79C970A",
	"amd-fast":   "Am79C973",
	"82540EM":    "82540EM",
	"82543GC":    "82543GC",
	"82545EM":    "82545EM",
	"virtio":     "virtio",
	"Am79C970A":  "Am79C970A",
	"Am79C973":   "Am79C973",
	"virtio-net": "virtio",
}
