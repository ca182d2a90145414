package geo

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// GridSquareCenter converts a Maidenhead locator (like "EN91" or "EN91kl")
// to the point at the centre of its square.
func GridSquareCenter(grid string) (orb.Point, error) {
	grid = strings.ToUpper(strings.TrimSpace(grid))
	if len(grid) < 4 || len(grid) == 5 {
		return orb.Point{}, fmt.Errorf("gridsquare must have 4 or 6 characters: %q", grid)
	}
	if grid[0] < 'A' || grid[0] > 'R' || grid[1] < 'A' || grid[1] > 'R' {
		return orb.Point{}, fmt.Errorf("invalid gridsquare field: %q", grid)
	}
	if grid[2] < '0' || grid[2] > '9' || grid[3] < '0' || grid[3] > '9' {
		return orb.Point{}, fmt.Errorf("invalid gridsquare square: %q", grid)
	}

	// Field: 20° x 10°
	lon := float64(grid[0]-'A')*20.0 - 180.0
	lat := float64(grid[1]-'A')*10.0 - 90.0

	// Square: 2° x 1°
	lon += float64(grid[2]-'0') * 2.0
	lat += float64(grid[3]-'0') * 1.0

	if len(grid) >= 6 {
		if grid[4] < 'A' || grid[4] > 'X' || grid[5] < 'A' || grid[5] > 'X' {
			return orb.Point{}, fmt.Errorf("invalid gridsquare subsquare: %q", grid)
		}
		// Subsquare: 5' x 2.5', then its centre
		lon += float64(grid[4]-'A')*(2.0/24.0) + 1.0/24.0
		lat += float64(grid[5]-'A')*(1.0/24.0) + 0.5/24.0
	} else {
		lon += 1.0
		lat += 0.5
	}

	return orb.Point{lon, lat}, nil
}
