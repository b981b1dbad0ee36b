package network

import "errors"

var (
	// Slot allocation errors
	ErrNoAvailableSlot = errors.New("no adapter slot available for network")
	ErrInvalidSlot     = errors.New("adapter slot outside the valid range")

	// Host-only network errors
	ErrSubnetCollision = errors.New("host-only subnet collides with an active bridged network")
	ErrNetworkNotFound = errors.New("host-only network not found")
	ErrDHCPMismatch    = errors.New("existing DHCP server does not match the requested configuration")

	// Address arithmetic errors
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	ErrInvalidNetmask = errors.New("invalid IPv4 netmask")

	// Interactive selection errors
	ErrNoBridgeCandidates    = errors.New("no usable host interface for bridging")
	ErrPromptRetriesExceeded = errors.New("too many invalid interface selections")
)
