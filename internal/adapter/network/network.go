package network

import (
	"net"
	"strings"
)

// Checker classifies the current connectivity by interface name. An
// interface whose name starts with one of the unrestricted prefixes (wifi
// or wired adapters, typically) and is up with an address counts as an
// unrestricted network.
type Checker struct {
	unrestrictedPrefixes []string
	interfaces           func() ([]net.Interface, error)
}

func NewChecker(unrestrictedPrefixes []string) *Checker {
	if len(unrestrictedPrefixes) == 0 {
		unrestrictedPrefixes = []string{"wlan", "wlp", "wl", "en", "eth"}
	}
	return &Checker{
		unrestrictedPrefixes: unrestrictedPrefixes,
		interfaces:           net.Interfaces,
	}
}

func (c *Checker) IsOnUnrestrictedNetwork() bool {
	ifaces, err := c.interfaces()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if !c.matches(iface.Name) {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

func (c *Checker) matches(name string) bool {
	lowered := strings.ToLower(name)
	for _, prefix := range c.unrestrictedPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}
