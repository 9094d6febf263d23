package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Server represents a log server announced on the local network
type Server struct {
	// Instance is the mDNS service instance name (e.g., "graylog-lab")
	Instance string

	// Hostname is the mDNS hostname (e.g., "graylog-lab.local.")
	Hostname string

	// IP is the address the server answered from, IPv4 preferred
	IP string

	// Port is the HTTP API port (typically 9000)
	Port int

	// TLS is true when the announcement carries tls=1
	TLS bool

	// Metadata contains additional mDNS TXT record data
	// Common fields: "path=/", "version=5.2.3", "tls=1"
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// BaseURL returns the HTTP base URL for the server, suitable for a profile
func (s *Server) BaseURL() string {
	scheme := "http"
	if s.TLS {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
	if path := s.GetMetadata("path"); path != "" && path != "/" {
		url += path
	}
	return url
}

// Version returns the announced server version, if any
func (s *Server) Version() string {
	return s.GetMetadata("version")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
