package net

import (
	"log/slog"
	"net"
	"strconv"
)

// OutgoingIP finds the local address other machines on the network reach
// this host on, for the mirror link.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// offline networks still have interface addresses
		return FirstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// FirstIPv4 returns the first IPv4 address of an interface that is up and not
// a loopback, or 127.0.0.1.
func FirstIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		slog.Warn("list interfaces", "component", "mirror", "err", err)
		return net.IPv4(127, 0, 0, 1)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	slog.Info("no suitable local IP found, using loopback", "component", "mirror")
	return net.IPv4(127, 0, 0, 1)
}

// MirrorURL is the websocket address viewers connect to.
func MirrorURL(host string, port int) string {
	return "ws://" + net.JoinHostPort(host, strconv.Itoa(port)) + MirrorPath
}
