package gps

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxSentence is far above the 82 characters NMEA 0183 allows, so only
// garbage is dropped.
const maxSentence = 1024

// Decoder reads NMEA sentences from an io.Reader
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a new NMEA sentence decoder
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadSentence returns the next sentence with a valid checksum, without the
// leading '$' and the trailing checksum. Lines that are not sentences are
// skipped.
func (d *Decoder) ReadSentence() (string, error) {
	for {
		line, err := d.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		if s, ok := checkSentence(strings.TrimRight(line, "\r\n")); ok {
			return s, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func checkSentence(line string) (string, bool) {
	if len(line) < 2 || len(line) > maxSentence || line[0] != '$' {
		return "", false
	}
	body := line[1:]

	star := strings.LastIndexByte(body, '*')
	if star < 0 {
		// Checksum is optional for most sentences
		return body, true
	}
	want, err := strconv.ParseUint(body[star+1:], 16, 8)
	if err != nil {
		return "", false
	}
	body = body[:star]
	if checksum(body) != byte(want) {
		return "", false
	}
	return body, true
}

// checksum is the XOR of every byte between '$' and '*'.
func checksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return sum
}
