package gps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gridmap/fix"
)

var (
	ErrUnsupported = errors.New("unsupported sentence")
	ErrNoFix       = errors.New("receiver has no fix")
)

// Parse turns a GGA or RMC sentence (from any talker: GP, GN, GL, ...)
// into a fix.
func Parse(sentence string) (*fix.Fix, error) {
	fields := strings.Split(sentence, ",")
	if len(fields[0]) != 5 {
		return nil, ErrUnsupported
	}

	switch fields[0][2:] {
	case "GGA":
		return parseGGA(fields)
	case "RMC":
		return parseRMC(fields)
	}
	return nil, ErrUnsupported
}

// $GPGGA,hhmmss.ss,llll.ll,a,yyyyy.yy,a,q,nn,h.h,alt,M,...
func parseGGA(fields []string) (*fix.Fix, error) {
	if len(fields) < 10 {
		return nil, fmt.Errorf("GGA: %d fields", len(fields))
	}
	if fields[6] == "" || fields[6] == "0" {
		return nil, ErrNoFix
	}
	lat, lon, err := parsePosition(fields[2:6])
	if err != nil {
		return nil, fmt.Errorf("GGA: %w", err)
	}

	f := &fix.Fix{Kind: fix.KindGGA, Time: fields[1], Lat: lat, Lon: lon}
	if n, err := strconv.Atoi(fields[7]); err == nil {
		f.Satellites = n
	}
	if alt, err := strconv.ParseFloat(fields[9], 64); err == nil {
		f.Altitude = alt
	}
	return f, nil
}

// $GPRMC,hhmmss.ss,A,llll.ll,a,yyyyy.yy,a,...
func parseRMC(fields []string) (*fix.Fix, error) {
	if len(fields) < 7 {
		return nil, fmt.Errorf("RMC: %d fields", len(fields))
	}
	if fields[2] != "A" {
		return nil, ErrNoFix
	}
	lat, lon, err := parsePosition(fields[3:7])
	if err != nil {
		return nil, fmt.Errorf("RMC: %w", err)
	}
	return &fix.Fix{Kind: fix.KindRMC, Time: fields[1], Lat: lat, Lon: lon}, nil
}

func parsePosition(f []string) (lat, lon float64, err error) {
	if lat, err = ParseCoord(f[0], f[1]); err != nil {
		return 0, 0, err
	}
	if lon, err = ParseCoord(f[2], f[3]); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// ParseCoord converts NMEA ddmm.mmmm / dddmm.mmmm to decimal degrees.
// For example, 4807.038,N -> 48.1173
func ParseCoord(value, dir string) (float64, error) {
	dot := strings.IndexByte(value, '.')
	if dot < 0 {
		dot = len(value)
	}
	if dot < 3 {
		return 0, fmt.Errorf("invalid NMEA coordinate %q", value)
	}

	deg, err := strconv.ParseFloat(value[:dot-2], 64)
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(value[dot-2:], 64)
	if err != nil {
		return 0, err
	}
	if min >= 60 {
		return 0, fmt.Errorf("invalid NMEA minutes %q", value)
	}

	dec := deg + min/60.0
	switch dir {
	case "N", "E":
	case "S", "W":
		dec = -dec
	default:
		return 0, fmt.Errorf("invalid NMEA direction %q", dir)
	}
	return dec, nil
}
