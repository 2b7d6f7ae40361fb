package island

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/biosim/components"
)

// Geography is a parsed island map, indexed [row][col] from zero.
type Geography [][]components.Habitat

// ParseGeography reads a map of single-character habitat codes, one row per
// line. Surrounding whitespace and indentation are ignored. The map must be
// rectangular and bordered by water.
func ParseGeography(text string) (Geography, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty map", ErrGeography)
	}

	lines := strings.Split(text, "\n")
	geo := make(Geography, len(lines))
	for r, line := range lines {
		line = strings.TrimSpace(line)
		if r > 0 && len(line) != len(geo[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGeography, r+1, len(line), len(geo[0]))
		}
		row := make([]components.Habitat, len(line))
		for c := 0; c < len(line); c++ {
			h, err := components.ParseHabitat(line[c])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %w", ErrGeography, r+1, c+1, err)
			}
			row[c] = h
		}
		geo[r] = row
	}
	if err := geo.checkBorder(); err != nil {
		return nil, err
	}
	return geo, nil
}

// checkBorder requires every edge cell to be water.
func (g Geography) checkBorder() error {
	rows, cols := g.Rows(), g.Cols()
	for r := range rows {
		for c := range cols {
			if r != 0 && r != rows-1 && c != 0 && c != cols-1 {
				continue
			}
			if g[r][c] != components.Water {
				return fmt.Errorf("%w: edge cell (%d, %d) is %s, want water", ErrGeography, r+1, c+1, g[r][c])
			}
		}
	}
	return nil
}

// Rows returns the number of rows.
func (g Geography) Rows() int { return len(g) }

// Cols returns the number of columns.
func (g Geography) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the habitat at a 1-indexed coordinate.
func (g Geography) At(c components.Coord) (components.Habitat, bool) {
	if c.Row < 1 || c.Row > g.Rows() || c.Col < 1 || c.Col > g.Cols() {
		return 0, false
	}
	return g[c.Row-1][c.Col-1], true
}

// String renders the map back to its text form.
func (g Geography) String() string {
	var sb strings.Builder
	for r, row := range g {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, h := range row {
			sb.WriteByte(h.Code())
		}
	}
	return sb.String()
}
