package gps

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// connectSerial opens a connection to a serial NMEA receiver
func connectSerial(devicePath string, baud int) (io.ReadWriteCloser, error) {
	if devicePath == "" {
		return nil, fmt.Errorf("no device path (e.g., /dev/ttyUSB0 or COM3) provided for GPS serial")
	}
	if baud <= 0 {
		baud = 4800 // NMEA 0183 default
	}

	mode := &serial.Mode{
		BaudRate: baud,
	}

	port, err := serial.Open(devicePath, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", devicePath, err)
	}

	// Set a read timeout so Read() doesn't block forever
	if err := port.SetReadTimeout(1 * time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return &timeoutPort{port}, nil
}

// timeoutPort hides read timeouts from bufio, which gives up after a few
// empty reads in a row.
type timeoutPort struct {
	serial.Port
}

func (p *timeoutPort) Read(b []byte) (int, error) {
	for {
		n, err := p.Port.Read(b)
		if n > 0 || err != nil {
			return n, err
		}
	}
}
