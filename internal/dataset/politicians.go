package dataset

import (
	"github.com/clemence/poliscope/internal/domain"
)

var annotatedPoliticianHeader = []string{
	"id", "twitter", "party", "type", "statuses", "last_tweeted", "gender", "sample",
}

// LoadPoliticians reads the politician registry.
func LoadPoliticians(path string) ([]domain.Politician, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "twitter", "party", "type", "statuses", "last_tweeted"); err != nil {
		return nil, err
	}

	politicians := make([]domain.Politician, 0, len(t.rows))
	for _, row := range t.rows {
		p := domain.Politician{
			ID:      t.get(row, "id"),
			Twitter: t.get(row, "twitter"),
			Party:   t.get(row, "party"),
			Mandate: t.get(row, "type"),
			Gender:  domain.Gender(t.get(row, "gender")),
		}
		if p.Statuses, err = t.getInt(row, "statuses"); err != nil {
			return nil, err
		}
		if p.LastTweeted, err = t.getDate(row, "last_tweeted"); err != nil {
			return nil, err
		}
		p.Sample = t.get(row, "sample") == "true"

		politicians = append(politicians, p)
	}
	return politicians, nil
}

// WriteAnnotatedPoliticians writes the registry with the sample flag added.
func WriteAnnotatedPoliticians(path string, politicians []domain.Politician) error {
	rows := make([][]string, 0, len(politicians))
	for _, p := range politicians {
		rows = append(rows, []string{
			p.ID,
			p.Twitter,
			p.Party,
			p.Mandate,
			formatInt(p.Statuses),
			formatDate(p.LastTweeted),
			string(p.Gender),
			formatBool(p.Sample),
		})
	}
	return WriteCSV(path, annotatedPoliticianHeader, rows)
}
