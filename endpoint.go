package memfacade

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

// Endpoint is one cache server.
type Endpoint struct {
	Host string
	Port int
}

// Addr returns host:port, bracketing IPv6 hosts.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string { return e.Addr() }

// ParseEndpoint parses "host" or "host:port". The port defaults to DefaultPort.
// IPv6 hosts must be bracketed: "[::1]" or "[::1]:11211".
func ParseEndpoint(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	host, portStr := s, ""
	switch {
	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Endpoint{}, &ConfigError{Field: "server", Value: s, Err: errors.New("missing ']'")}
		}
		host = s[1:end]
		rest := s[end+1:]
		if rest != "" {
			if !strings.HasPrefix(rest, ":") {
				return Endpoint{}, &ConfigError{Field: "server", Value: s, Err: errors.New("unexpected text after ']'")}
			}
			portStr = rest[1:]
		}
	case strings.Count(s, ":") == 1:
		i := strings.IndexByte(s, ':')
		host, portStr = s[:i], s[i+1:]
	case strings.Count(s, ":") > 1:
		return Endpoint{}, &ConfigError{Field: "server", Value: s, Err: errors.New("IPv6 host must be bracketed")}
	}

	if host == "" {
		return Endpoint{}, &ConfigError{Field: "server", Value: s, Err: errors.New("empty host")}
	}
	port := DefaultPort
	if portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p < 1 || p > 65535 {
			return Endpoint{}, &ConfigError{Field: "server", Value: s, Err: errors.New("port must be 1..65535")}
		}
		port = p
	}
	return Endpoint{Host: host, Port: port}, nil
}

// ParseEndpoints parses servers in order. An empty list yields ErrNoServers.
func ParseEndpoints(servers []string) ([]Endpoint, error) {
	if len(servers) == 0 {
		return nil, &ConfigError{Field: "servers", Err: ErrNoServers}
	}
	out := make([]Endpoint, 0, len(servers))
	for _, s := range servers {
		ep, err := ParseEndpoint(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, nil
}
