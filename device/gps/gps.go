package gps

import (
	"fmt"
	"io"
	"log"
	"strings"

	"gridmap/config"
	"gridmap/fix"
)

// Client represents an active connection to an NMEA receiver
type Client struct {
	conn io.ReadWriteCloser // The underlying connection (TCP, Serial, etc.)
}

// Connect opens the receiver named in the config. Devices of the form
// host:port are dialled over TCP (gpsd raw mode, ser2net); anything else
// is a serial port.
func Connect(conf config.GPSConfig) (*Client, error) {
	if conf.Device == "" {
		return nil, fmt.Errorf("no gps device configured")
	}

	if strings.Contains(conf.Device, ":") && !strings.HasPrefix(conf.Device, "COM") {
		log.Printf("Attempting GPS TCP connection to: %s", conf.Device)
		tcpConn, err := connectTCP(conf.Device)
		if err != nil {
			return nil, err
		}
		log.Println("Connected to GPS via TCP")
		return &Client{conn: tcpConn}, nil
	}

	log.Printf("Attempting GPS serial connection to: %s at %d baud", conf.Device, conf.Baud)
	serialConn, err := connectSerial(conf.Device, conf.Baud)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to GPS via serial")
	return &Client{conn: serialConn}, nil
}

// Start reads sentences until the connection fails and sends every
// position fix down fixChan, closing it on exit. Run it as a goroutine.
func (c *Client) Start(fixChan chan<- *fix.Fix) {
	decoder := NewDecoder(c.conn)
	defer close(fixChan)

	for {
		sentence, err := decoder.ReadSentence()
		if err != nil {
			if err != io.EOF {
				log.Printf("GPS read error: %v", err)
			}
			return
		}

		f, err := Parse(sentence)
		if err != nil {
			// Other sentence types and fixes without a position
			continue
		}
		fixChan <- f
	}
}

// Close disconnects the client
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
