package geo

import "sort"

// Gazetteer holds the normalized reference lists the resolver matches
// against. It is an immutable value constructed once at startup; build it
// with NewGazetteer so entries are normalized and deduplicated.
type Gazetteer struct {
	Departements []string
	Villes       []string
	Regions      []string
}

// NewGazetteer normalizes and deduplicates the three tiers. Préfectures and
// sous-préfectures belong in the villes tier; callers merge them before
// construction.
func NewGazetteer(departements, villes, regions []string) Gazetteer {
	return Gazetteer{
		Departements: normalizeEntries(departements),
		Villes:       normalizeEntries(villes),
		Regions:      normalizeEntries(regions),
	}
}

// normalizeEntries maps every entry through Normalize, drops empties and
// duplicates, and sorts by descending length so that a short name can never
// shadow a longer one inside an alternation pattern.
func normalizeEntries(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		normalized := Normalize(entry)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
