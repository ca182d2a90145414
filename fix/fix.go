package fix

import (
	"github.com/paulmach/orb"
)

// Kind is the NMEA sentence a fix was taken from.
type Kind int

const (
	KindGGA Kind = iota // Fix data, carries satellites and altitude
	KindRMC             // Recommended minimum, carries the validity flag
)

func (k Kind) String() string {
	if k == KindRMC {
		return "RMC"
	}
	return "GGA"
}

// Fix holds the receiver data we care about.
type Fix struct {
	Kind Kind
	Time string // hhmmss.ss UTC, as sent

	Lat float64
	Lon float64

	// Only set by GGA sentences
	Satellites int
	Altitude   float64
}

// Point returns the position in orb order (lon, lat).
func (f *Fix) Point() orb.Point {
	return orb.Point{f.Lon, f.Lat}
}
