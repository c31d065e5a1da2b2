package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a single WGS84 coordinate, longitude first.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// MultiPoint is the set of map pins attached to a record. It travels to
// and from the PostGIS geometry(MultiPoint,4326) column as well-known
// text; only storage and exact lookup are needed, so no further geometry
// operations are implemented.
type MultiPoint []Point

// WKT renders the geometry as MULTIPOINT well-known text, e.g.
// "MULTIPOINT((30.52 50.45),(30.61 50.4))". An empty set renders as ""
// so callers can map it to SQL NULL with NULLIF.
func (mp MultiPoint) WKT() string {
	if len(mp) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MULTIPOINT(")
	for i, p := range mp {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		b.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// ParseMultiPoint parses MULTIPOINT well-known text. Both forms PostGIS
// has emitted over the years are accepted: parenthesized points
// "MULTIPOINT((1 2),(3 4))" and the bare form "MULTIPOINT(1 2,3 4)".
// "MULTIPOINT EMPTY" and "" parse to nil.
func ParseMultiPoint(s string) (MultiPoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "MULTIPOINT") {
		return nil, fmt.Errorf("not a MULTIPOINT geometry: %q", s)
	}
	rest := strings.TrimSpace(s[len("MULTIPOINT"):])
	if strings.EqualFold(rest, "EMPTY") {
		return nil, nil
	}
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return nil, fmt.Errorf("malformed MULTIPOINT body: %q", s)
	}
	body := rest[1 : len(rest)-1]

	var mp MultiPoint
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "(")
		part = strings.TrimSuffix(part, ")")
		coords := strings.Fields(part)
		if len(coords) != 2 {
			return nil, fmt.Errorf("malformed point %q in %q", part, s)
		}
		lon, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude %q: %w", coords[0], err)
		}
		lat, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q: %w", coords[1], err)
		}
		mp = append(mp, Point{Lon: lon, Lat: lat})
	}
	return mp, nil
}
