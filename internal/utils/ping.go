package utils

import (
	"fmt"
	"net"
	"time"
)

// PingHostPort checks if a TCP service is reachable at host:port
func PingHostPort(address string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}
