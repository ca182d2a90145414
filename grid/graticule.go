package grid

// graticule draws plain latitude/longitude lines for the decimal-degree and
// degree-minute-second systems. The two differ only in their tables and
// label text.
type graticule struct {
	system System
}

func (g graticule) Spacing(t Table, req Request) Spacing {
	return t.At(req.Zoom)
}

func (g graticule) Generate(st *State, opts Options) ([]Line, error) {
	b := st.Bounds
	interval := st.Spacing.Interval

	lats, err := axisValues(g.system, b.South, b.North, interval)
	if err != nil {
		return nil, err
	}
	lngs, err := axisValues(g.system, b.West, b.East, interval)
	if err != nil {
		return nil, err
	}
	st.LatCoords, st.LngCoords = lats, lngs

	lines := make([]Line, 0, len(lats)+len(lngs))
	for _, lng := range lngs {
		lines = append(lines, verticalLine(b, lng, KindLine, opts.LineStyle))
	}
	for _, lat := range lats {
		lines = append(lines, horizontalLine(b, lat, KindLine, opts.LineStyle))
	}
	return lines, nil
}
