package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Palette assigns stable series colors to spaces
// Assignment is by sorted space id so the same query always colors the same
// space the same way regardless of response ordering
type Palette struct{ colors []string }

// DefaultPalette returns the standard report color cycle
func DefaultPalette() Palette {
	return Palette{colors: []string{
		"#3366cc", "#dc3912", "#ff9900", "#109618", "#990099",
		"#0099c6", "#dd4477", "#66aa00", "#b82e2e", "#316395",
	}}
}

// Assign maps each space id to a color, cycling when spaces outnumber colors
func (p Palette) Assign(ids []uuid.UUID) map[uuid.UUID]string {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	out := make(map[uuid.UUID]string, len(sorted))
	for i, id := range sorted {
		out[id] = p.colors[i%len(p.colors)]
	}
	return out
}
