// internal/types/position.go
package types

import "fmt"

// Position is a cell of the drum grid.
// Measure is the 0-based measure index, Row the 0-based staff row
// (sheet.Parts order) and Step the 0-based grid step within the measure.
type Position struct {
	Measure int
	Row     int
	Step    int
}

func (p Position) String() string {
	return fmt.Sprintf("m%d r%d s%d", p.Measure+1, p.Row+1, p.Step+1)
}
