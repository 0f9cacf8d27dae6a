package dataset

import (
	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/gender"
	"github.com/clemence/poliscope/internal/geo"
)

// GazetteerPaths names the reference CSVs for the three matching tiers.
// Préfectures and sous-préfectures are merged into the villes tier.
type GazetteerPaths struct {
	Departements string
	Prefectures  string
	Villes       string
	Regions      string
}

// LoadGazetteer reads the tier CSVs (single "name" column each) into an
// immutable gazetteer. The préfectures path may be empty.
func LoadGazetteer(paths GazetteerPaths) (geo.Gazetteer, error) {
	departements, err := loadNames(paths.Departements)
	if err != nil {
		return geo.Gazetteer{}, err
	}
	villes, err := loadNames(paths.Villes)
	if err != nil {
		return geo.Gazetteer{}, err
	}
	if paths.Prefectures != "" {
		prefectures, err := loadNames(paths.Prefectures)
		if err != nil {
			return geo.Gazetteer{}, err
		}
		villes = append(villes, prefectures...)
	}
	regions, err := loadNames(paths.Regions)
	if err != nil {
		return geo.Gazetteer{}, err
	}

	return geo.NewGazetteer(departements, villes, regions), nil
}

func loadNames(path string) ([]string, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("name"); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if name := t.get(row, "name"); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// LoadFirstNames reads the first-name/gender reference list
// (columns "name" and "gender" with values m/f).
func LoadFirstNames(path string) ([]gender.Entry, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("name", "gender"); err != nil {
		return nil, err
	}

	entries := make([]gender.Entry, 0, len(t.rows))
	for _, row := range t.rows {
		entries = append(entries, gender.Entry{
			Name:   t.get(row, "name"),
			Gender: domain.Gender(t.get(row, "gender")),
		})
	}
	return entries, nil
}
