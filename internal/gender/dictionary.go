// Package gender infers user gender from the first token of a display name
// using a first-name reference dictionary.
package gender

import (
	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/geo"
)

// Entry is one row of the first-name reference list.
type Entry struct {
	Name   string
	Gender domain.Gender
}

// Dictionary maps normalized first names to a gender. It is immutable after
// construction.
type Dictionary struct {
	names map[string]domain.Gender
}

// NewDictionary builds the lookup table from the raw reference list. Names
// are normalized with the same routine used for locations. The reference
// list carries duplicates and a handful of names listed under both genders;
// forcedFemale entries always resolve to "f", with their conflicting "m"
// rows discarded. For any other conflict the first row wins, matching the
// deduplication order of the source list.
func NewDictionary(entries []Entry, forcedFemale []string) *Dictionary {
	forced := make(map[string]struct{}, len(forcedFemale))
	for _, name := range forcedFemale {
		if normalized := geo.Normalize(name); normalized != "" {
			forced[normalized] = struct{}{}
		}
	}

	names := make(map[string]domain.Gender, len(entries))
	for name := range forced {
		names[name] = domain.GenderFemale
	}
	for _, entry := range entries {
		name := geo.Normalize(entry.Name)
		if name == "" {
			continue
		}
		if _, override := forced[name]; override {
			continue
		}
		if _, dup := names[name]; dup {
			continue
		}
		if entry.Gender != domain.GenderMale && entry.Gender != domain.GenderFemale {
			continue
		}
		names[name] = entry.Gender
	}

	return &Dictionary{names: names}
}

// Len reports the number of distinct names in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.names)
}

// Infer maps a display name to a gender. Only the first whitespace-delimited
// token of the normalized name is considered; unknown tokens yield
// GenderUnknown, never a default.
func (d *Dictionary) Infer(displayName string) domain.Gender {
	token := geo.FirstToken(displayName)
	if token == "" {
		return domain.GenderUnknown
	}
	return d.names[token]
}
