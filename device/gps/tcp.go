package gps

import (
	"fmt"
	"net"
	"time"
)

// connectTCP dials an NMEA stream at the given address (e.g., "localhost:10110")
func connectTCP(address string) (net.Conn, error) {
	if address == "" {
		return nil, fmt.Errorf("no device address (ip:port) provided for GPS TCP")
	}

	conn, err := net.DialTimeout("tcp", address, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GPS at %s: %w", address, err)
	}
	return conn, nil
}
