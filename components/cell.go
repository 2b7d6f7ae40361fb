package components

import "fmt"

// Coord is a 1-indexed (row, column) grid position with a top-left origin.
type Coord struct {
	Row, Col int
}

// String formats the coordinate as (row, col).
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Adjacent returns the four orthogonal neighbours in N, S, E, W order,
// without any bounds check.
func (c Coord) Adjacent() [4]Coord {
	return [4]Coord{
		{c.Row - 1, c.Col},
		{c.Row + 1, c.Col},
		{c.Row, c.Col + 1},
		{c.Row, c.Col - 1},
	}
}

// Location is the ECS component pinning a cell entity to the grid.
type Location struct {
	Coord Coord
}

// Cell holds one grid cell's habitat, fodder and animals.
// Residents are ordered; Inbox buffers animals arriving during a cycle.
type Cell struct {
	Habitat         Habitat
	FodderCapacity  float64
	FodderRemaining float64
	Neighbors       []Coord

	Residents [NumSpecies][]*Animal
	Inbox     [NumSpecies][]*Animal
}

// Habitable reports whether the cell supports residents.
func (c *Cell) Habitable() bool {
	return c.Habitat.Habitable()
}

// Count returns the number of residents of a species.
func (c *Cell) Count(s Species) int {
	return len(c.Residents[s])
}

// Total returns the number of residents of all species.
func (c *Cell) Total() int {
	n := 0
	for _, pop := range c.Residents {
		n += len(pop)
	}
	return n
}

// Receive appends a batch of arriving animals to the cell's inbox.
func (c *Cell) Receive(s Species, batch []*Animal) {
	c.Inbox[s] = append(c.Inbox[s], batch...)
}
