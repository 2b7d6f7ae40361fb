// Package traits defines the feeding capabilities that distinguish species.
package traits

// Trait is a capability flag set.
type Trait uint32

const (
	Grazes Trait = 1 << iota // Eats the cell's fodder
	Hunts                    // Kills and eats grazers on the same cell
)

// Has checks if a trait set contains a trait.
func (t Trait) Has(other Trait) bool {
	return t&other != 0
}

// IsPrey reports whether the set describes an animal that feeds only on fodder.
func IsPrey(t Trait) bool {
	return t.Has(Grazes) && !t.Has(Hunts)
}

// IsPredator reports whether the set includes hunting.
func IsPredator(t Trait) bool {
	return t.Has(Hunts)
}

// TraitNames returns human-readable names for traits.
func TraitNames(t Trait) []string {
	var names []string
	if t.Has(Grazes) {
		names = append(names, "Grazes")
	}
	if t.Has(Hunts) {
		names = append(names, "Hunts")
	}
	return names
}
