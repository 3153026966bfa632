package net

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service viewers browse for.
const ServiceType = "_pathboard._tcp"

// NewService describes a mirror listening on port. An empty host falls back
// to the OS hostname; nil ips fall back to the first usable IPv4 address.
func NewService(host string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	if host == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		host = h
	}
	if len(ips) == 0 {
		ips = []net.IP{FirstIPv4()}
	}
	hostName := strings.TrimSuffix(host, ".") + ".local."

	service, err := mdns.NewMDNSService(host, ServiceType, "", hostName, port, ips, []string{"PathBoard mirror"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return service, nil
}

// Advertise announces the mirror on the local network until the returned
// server is shut down.
func Advertise(host string, port int) (*mdns.Server, error) {
	service, err := NewService(host, port, nil)
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse reports the address of every mirror found on the local network.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()
	err := mdns.Lookup(ServiceType, entries)
	close(entries)
	<-done
	return err
}
