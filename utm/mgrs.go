package utm

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// 100 km square column letters repeat every three zones, row letters every
// two (offset by five for even zones).
var columnSets = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

const rowLetters = "ABCDEFGHJKLMNPQRSTUV"

// SquareID returns the two letters of the 100 km square holding u.
func SquareID(u Point) string {
	col := int(math.Floor(u.Easting/100000)) - 1
	if col < 0 {
		col = 0
	}
	if col > 7 {
		col = 7
	}
	set := columnSets[(u.ZoneNumber-1)%3]

	row := int(math.Floor(u.Northing/100000)) % 20
	if row < 0 {
		row += 20
	}
	if u.ZoneNumber%2 == 0 {
		row = (row + 5) % 20
	}
	return string([]byte{set[col], rowLetters[row]})
}

// MGRS formats u as a grid reference with digits (0-5) of easting and
// northing precision, e.g. "18S UJ 23487 06483" for digits 5.
func MGRS(u Point, digits int) string {
	digits = max(0, min(5, digits))
	head := fmt.Sprintf("%d%c %s", u.ZoneNumber, u.ZoneLetter, SquareID(u))
	if digits == 0 {
		return head
	}
	div := math.Pow(10, float64(5-digits))
	e := int(math.Floor(math.Mod(u.Easting, 100000) / div))
	n := int(math.Floor(math.Mod(u.Northing, 100000) / div))
	return fmt.Sprintf("%s %0*d %0*d", head, digits, e, digits, n)
}

// Reference projects p and formats it as MGRS.
func Reference(p orb.Point, digits int) (string, error) {
	u, err := FromLatLon(p)
	if err != nil {
		return "", err
	}
	return MGRS(u, digits), nil
}
