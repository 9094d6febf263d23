// Package discovery provides mDNS-based discovery of log servers.
//
// Servers that announce themselves with the "_graylog._tcp" service type are
// collected for the scan timeout and returned with a ready-to-use base URL.
// TXT records carry optional metadata: "path" (API prefix), "tls" and
// "version".
//
// # Usage Example
//
//	servers, err := discovery.NewScanner().Scan()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range servers {
//	    fmt.Printf("Found: %s at %s\n", s.Instance, s.BaseURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
