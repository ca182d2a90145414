// Package utm converts between geographic coordinates and Universal
// Transverse Mercator coordinates on the WGS84 ellipsoid, and formats
// Military Grid Reference System references.
package utm

import (
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

const (
	scaleFactor   = 0.9996
	falseEasting  = 500000.0
	southNorthing = 10000000.0

	// MinLatitude and MaxLatitude bound the area covered by UTM zones.
	MinLatitude = -80.0
	MaxLatitude = 84.0
)

// bandLetters are the 8° latitude bands from 80°S; I and O are skipped.
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

// Point is a position in a UTM zone.
type Point struct {
	Easting    float64
	Northing   float64
	ZoneNumber int
	ZoneLetter byte
}

// Northern reports whether the point uses the northern hemisphere false northing.
func (p Point) Northern() bool {
	return p.ZoneLetter >= 'N'
}

// InHemisphereOf re-expresses p with the false northing of ref, so that
// northings on both sides of the equator can be compared and stepped. The
// result may carry a negative northing or one above 10000 km.
func (p Point) InHemisphereOf(ref Point) Point {
	if p.Northern() == ref.Northern() {
		return p
	}
	if ref.Northern() {
		p.Northing -= southNorthing
	} else {
		p.Northing += southNorthing
	}
	p.ZoneLetter = ref.ZoneLetter
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("%d%c %.0fE %.0fN", p.ZoneNumber, p.ZoneLetter, p.Easting, p.Northing)
}

// ProjectionError reports a point the transform cannot resolve.
type ProjectionError struct {
	Lat, Lon float64
	Zone     string
	Reason   string
}

func (e *ProjectionError) Error() string {
	if e.Zone != "" {
		return fmt.Sprintf("utm: zone %s: %s", e.Zone, e.Reason)
	}
	return fmt.Sprintf("utm: (%.6f, %.6f): %s", e.Lat, e.Lon, e.Reason)
}

// ZoneLetter returns the latitude band letter for lat.
func ZoneLetter(lat float64) (byte, error) {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return 0, &ProjectionError{Lat: lat, Reason: "latitude outside UTM coverage"}
	}
	if lat >= 72 {
		return 'X', nil
	}
	return bandLetters[int(math.Floor((lat-MinLatitude)/8))], nil
}

// ZoneNumber returns the zone for a position, including the Norway and
// Svalbard exceptions.
func ZoneNumber(lat, lon float64) int {
	lon = lon - 360*math.Floor((lon+180)/360)

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}
	if lat >= 72 && lat < 84 {
		switch {
		case lon >= 0 && lon < 9:
			return 31
		case lon >= 9 && lon < 21:
			return 33
		case lon >= 21 && lon < 33:
			return 35
		case lon >= 33 && lon < 42:
			return 37
		}
	}
	return int(math.Floor((lon+180)/6)) + 1
}

// CentralMeridian returns the longitude at the centre of zone.
func CentralMeridian(zone int) float64 {
	return float64(zone-1)*6 - 180 + 3
}

type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64 {
	return s.a
}
func (s spheroid) Fi() float64 {
	return s.fi
}

type transformFunc = func(a, b, c float64) (a2, b2, c2 float64)

type zoneKey struct {
	zone  int
	north bool
}

type zoneTransform struct {
	forward transformFunc
	inverse transformFunc
}

var zones sync.Map

// EPSG:326xx (north) / EPSG:327xx (south)
// +proj=utm +zone=xx [+south] +datum=WGS84 +units=m +no_defs
func transformFor(zone int, north bool) zoneTransform {
	key := zoneKey{zone: zone, north: north}
	if t, ok := zones.Load(key); ok {
		return t.(zoneTransform)
	}

	cm := CentralMeridian(zone)
	datum := wgs84.Datum{
		Spheroid: spheroid{
			a: 6378137, fi: 298.257223563,
		},
		// Zone 32V and the Svalbard zones reach past the nominal 6°, and
		// grid lines near the equator are extended into the other
		// hemisphere.
		Area: wgs84.AreaFunc(func(lon, lat float64) bool {
			return math.Abs(lon-cm) <= 9 && lat >= MinLatitude && lat <= MaxLatitude
		}),
	}
	northing := 0.0
	if !north {
		northing = southNorthing
	}
	proj := datum.TransverseMercator(cm, 0, scaleFactor, falseEasting, northing)
	t := zoneTransform{
		forward: wgs84.Transform(wgs84.WGS84().LonLat(), proj),
		inverse: wgs84.Transform(proj, wgs84.WGS84().LonLat()),
	}
	actual, _ := zones.LoadOrStore(key, t)
	return actual.(zoneTransform)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FromLatLon projects a geographic point into its own UTM zone.
func FromLatLon(p orb.Point) (Point, error) {
	lat, lon := p.Lat(), p.Lon()
	if !finite(lat, lon) {
		return Point{}, &ProjectionError{Lat: lat, Lon: lon, Reason: "non-finite coordinate"}
	}
	letter, err := ZoneLetter(lat)
	if err != nil {
		return Point{}, &ProjectionError{Lat: lat, Lon: lon, Reason: "latitude outside UTM coverage"}
	}
	zone := ZoneNumber(lat, lon)

	t := transformFor(zone, letter >= 'N')
	e, n, _ := t.forward(lon, lat, 0)
	if !finite(e, n) {
		return Point{}, &ProjectionError{Lat: lat, Lon: lon, Reason: "projection diverged"}
	}
	return Point{Easting: e, Northing: n, ZoneNumber: zone, ZoneLetter: letter}, nil
}

// ToLatLon converts a UTM point back to geographic coordinates.
func ToLatLon(u Point) (orb.Point, error) {
	zoneName := fmt.Sprintf("%d%c", u.ZoneNumber, u.ZoneLetter)
	if u.ZoneNumber < 1 || u.ZoneNumber > 60 {
		return orb.Point{}, &ProjectionError{Zone: zoneName, Reason: "zone number outside 1..60"}
	}
	if u.ZoneLetter == 0 || !containsLetter(u.ZoneLetter) {
		return orb.Point{}, &ProjectionError{Zone: zoneName, Reason: "invalid latitude band"}
	}
	if !finite(u.Easting, u.Northing) {
		return orb.Point{}, &ProjectionError{Zone: zoneName, Reason: "non-finite coordinate"}
	}

	t := transformFor(u.ZoneNumber, u.Northern())
	lon, lat, _ := t.inverse(u.Easting, u.Northing, 0)
	if !finite(lon, lat) {
		return orb.Point{}, &ProjectionError{Zone: zoneName, Reason: "inverse projection diverged"}
	}
	lon, lat = t.refine(u.Easting, u.Northing, lon, lat)
	if !finite(lon, lat) {
		return orb.Point{}, &ProjectionError{Zone: zoneName, Reason: "inverse projection diverged"}
	}
	return orb.Point{lon, lat}, nil
}

const (
	refineSteps     = 4
	refineTolerance = 1e-6 // metres
	refineDelta     = 1e-6 // degrees
)

// refine corrects an inverse estimate with Newton steps against the
// forward transform, so that forward(inverse(e, n)) returns e, n. The
// series inverse drifts by metres away from the central meridian.
func (t zoneTransform) refine(e, n, lon, lat float64) (float64, float64) {
	for i := 0; i < refineSteps; i++ {
		fe, fn, _ := t.forward(lon, lat, 0)
		de, dn := e-fe, n-fn
		if math.Abs(de) < refineTolerance && math.Abs(dn) < refineTolerance {
			break
		}

		// Jacobian d(e,n)/d(lon,lat) by forward differences
		e1, n1, _ := t.forward(lon+refineDelta, lat, 0)
		e2, n2, _ := t.forward(lon, lat+refineDelta, 0)
		a, b := (e1-fe)/refineDelta, (e2-fe)/refineDelta
		c, d := (n1-fn)/refineDelta, (n2-fn)/refineDelta
		det := a*d - b*c
		if det == 0 || !finite(det) {
			break
		}
		lon += (d*de - b*dn) / det
		lat += (a*dn - c*de) / det
	}
	return lon, lat
}

func containsLetter(l byte) bool {
	for i := 0; i < len(bandLetters); i++ {
		if bandLetters[i] == l {
			return true
		}
	}
	return false
}

// Transformer exposes FromLatLon/ToLatLon as a value the grid generators can
// hold.
type Transformer struct{}

func (Transformer) Forward(p orb.Point) (Point, error) {
	return FromLatLon(p)
}

func (Transformer) Inverse(u Point) (orb.Point, error) {
	return ToLatLon(u)
}
