package components

import "fmt"

// Habitat is the landscape kind of a cell.
type Habitat uint8

const (
	Water Habitat = iota
	Plains
	Hills
	Barren

	NumHabitats = 4
)

// habitatCodes are the single-character geography codes, indexed by Habitat.
var habitatCodes = [NumHabitats]byte{'W', 'L', 'H', 'D'}

// String returns the display name for a Habitat.
func (h Habitat) String() string {
	switch h {
	case Water:
		return "Water"
	case Plains:
		return "Plains"
	case Hills:
		return "Hills"
	case Barren:
		return "Barren"
	}
	return "Unknown"
}

// Code returns the geography character for the habitat.
func (h Habitat) Code() byte {
	if h < NumHabitats {
		return habitatCodes[h]
	}
	return '?'
}

// Habitable reports whether animals can live on the habitat.
func (h Habitat) Habitable() bool {
	return h != Water && h < NumHabitats
}

// ParseHabitat resolves a geography character.
func ParseHabitat(code byte) (Habitat, error) {
	for i, c := range habitatCodes {
		if c == code {
			return Habitat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown habitat code %q", ErrInvalidArgument, code)
}
