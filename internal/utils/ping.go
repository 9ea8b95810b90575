package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// NatsPingTimeout bounds each server dial of PingNats
const NatsPingTimeout = 1500 * time.Millisecond

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"tls":   "443",
	"nats":  "4222",
}

// PingService checks that a TCP connection to the URL's host can be opened
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Hostname() == "" {
		return fmt.Errorf("invalid URL %q: no host", serviceURL)
	}

	port := parsedURL.Port()
	if port == "" {
		if port = defaultPorts[parsedURL.Scheme]; port == "" {
			port = "80"
		}
	}

	address := net.JoinHostPort(parsedURL.Hostname(), port)
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingNats checks that at least one server of a NATS URL list is reachable.
// The list is comma separated like nats.Connect takes it, and entries
// without a scheme are treated as nats://.
func PingNats(natsURL string) error {
	var errs []error
	for _, server := range strings.Split(natsURL, ",") {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		if !strings.Contains(server, "://") {
			server = "nats://" + server
		}
		err := PingService(server, NatsPingTimeout)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("no NATS server configured")
	}
	return errors.Join(errs...)
}
