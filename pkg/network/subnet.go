package network

import (
	"fmt"
	"net"
)

// NetworkAddress masks ip with netmask octet by octet and returns the
// address identifying the subnet, e.g. ("172.28.128.1",
// "255.255.255.0") -> "172.28.128.0".
func NetworkAddress(ip, netmask string) (string, error) {
	addr, err := parseIPv4(ip)
	if err != nil {
		return "", err
	}

	mask, err := parseIPv4(netmask)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidNetmask, netmask)
	}

	masked := addr.Mask(net.IPMask(mask))
	return masked.String(), nil
}

// OffsetAddress adds n to the address, carrying across octets, e.g.
// ("172.28.128.0", 2) -> "172.28.128.2".
func OffsetAddress(ip string, n int) (string, error) {
	addr, err := parseIPv4(ip)
	if err != nil {
		return "", err
	}

	return uint32ToIP(ipToUint32(addr) + uint32(n)).String(), nil
}

// WithLastOctet replaces the last octet of the address, e.g.
// ("172.28.128.0", 254) -> "172.28.128.254".
func WithLastOctet(ip string, octet byte) (string, error) {
	addr, err := parseIPv4(ip)
	if err != nil {
		return "", err
	}

	out := make(net.IP, len(addr))
	copy(out, addr)
	out[3] = octet
	return out.String(), nil
}

func parseIPv4(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, s)
	}

	ip = ip.To4()
	if ip == nil {
		return nil, fmt.Errorf("%w: %s is not IPv4", ErrInvalidAddress, s)
	}

	return ip, nil
}

// Helper functions for IP address arithmetic
func ipToUint32(ip net.IP) uint32 {
	ip = ip.To4()
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

func uint32ToIP(n uint32) net.IP {
	return net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}
