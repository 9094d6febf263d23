package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
		wantURL  string
	}{
		{
			name: "IPv4 with path",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "graylog-lab"},
				HostName:      "graylog-lab.local.",
				Port:          9000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
				Text:          []string{"path=/graylog", "version=5.2.3"},
			},
			wantIP:   "192.168.4.16",
			wantPort: 9000,
			wantURL:  "http://192.168.4.16:9000/graylog",
		},
		{
			name: "no port defaults",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "logs"},
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantIP:   "10.0.0.5",
			wantPort: DefaultPort,
			wantURL:  "http://10.0.0.5:9000",
		},
		{
			name: "tls flag",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "prod"},
				Port:          443,
				AddrIPv4:      []net.IP{net.ParseIP("172.16.0.1")},
				Text:          []string{"tls=1", "path=/"},
			},
			wantIP:   "172.16.0.1",
			wantPort: 443,
			wantURL:  "https://172.16.0.1:443",
		},
		{
			name: "IPv6 fallback",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "v6"},
				Port:          9000,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 9000,
			wantURL:  "http://[fe80::1]:9000",
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				Port:          9000,
			},
			wantNil: true,
		},
		{
			name:    "no instance",
			entry:   &zeroconf.ServiceEntry{AddrIPv4: []net.IP{net.ParseIP("10.0.0.1")}},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if server != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", server)
				}
				return
			}
			if server == nil {
				t.Fatal("parseServiceEntry() = nil, want server")
			}
			if server.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", server.IP, tt.wantIP)
			}
			if server.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", server.Port, tt.wantPort)
			}
			if got := server.BaseURL(); got != tt.wantURL {
				t.Errorf("BaseURL() = %v, want %v", got, tt.wantURL)
			}
		})
	}
}

func TestServerMetadata(t *testing.T) {
	s := &Server{Instance: "lab", Hostname: "lab.local.", IP: "10.0.0.2", Port: 9000,
		Metadata: map[string]string{"version": "5.2.3"}}

	if s.Version() != "5.2.3" {
		t.Errorf("Version() = %v, want 5.2.3", s.Version())
	}
	if s.GetMetadata("missing") != "" {
		t.Error("GetMetadata() should return empty string for missing keys")
	}
	if got := s.String(); got != "lab (lab.local.) at 10.0.0.2:9000" {
		t.Errorf("String() = %v", got)
	}

	var empty Server
	if empty.GetMetadata("version") != "" {
		t.Error("GetMetadata() on nil metadata should return empty string")
	}
}

func TestNewScanner(t *testing.T) {
	if s := NewScanner(); s.Timeout != DefaultScanTimeout {
		t.Errorf("NewScanner().Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}
