package dataset

import (
	"github.com/clemence/poliscope/internal/domain"
)

var annotatedUserHeader = []string{
	"id", "name", "location", "followers", "statuses", "last_tweeted",
	"active", "departement", "ville", "region", "france", "located", "sample", "gender",
}

// LoadUsers reads the user table. Only the base columns are required; the
// derived columns of a previously annotated file are picked up when present,
// so annotated outputs can be re-read by later stages.
func LoadUsers(path string) ([]domain.User, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "name", "location", "followers", "statuses", "last_tweeted"); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(t.rows))
	for _, row := range t.rows {
		user := domain.User{
			ID:          t.get(row, "id"),
			Name:        t.get(row, "name"),
			RawLocation: t.get(row, "location"),
		}
		if user.Followers, err = t.getInt(row, "followers"); err != nil {
			return nil, err
		}
		if user.Statuses, err = t.getInt(row, "statuses"); err != nil {
			return nil, err
		}
		if user.LastTweeted, err = t.getDate(row, "last_tweeted"); err != nil {
			return nil, err
		}

		user.Active = t.get(row, "active") == "true"
		user.Location = domain.Location{
			Departement: t.get(row, "departement"),
			Ville:       t.get(row, "ville"),
			Region:      t.get(row, "region"),
			France:      t.get(row, "france") == "true",
		}
		user.Sample = t.get(row, "sample") == "true"
		user.Gender = domain.Gender(t.get(row, "gender"))

		users = append(users, user)
	}
	return users, nil
}

// WriteAnnotatedUsers writes the user table with the derived columns added.
func WriteAnnotatedUsers(path string, users []domain.User) error {
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{
			user.ID,
			user.Name,
			user.RawLocation,
			formatInt(user.Followers),
			formatInt(user.Statuses),
			formatDate(user.LastTweeted),
			formatBool(user.Active),
			user.Location.Departement,
			user.Location.Ville,
			user.Location.Region,
			formatBool(user.Location.France),
			formatBool(user.Location.Located()),
			formatBool(user.Sample),
			string(user.Gender),
		})
	}
	return WriteCSV(path, annotatedUserHeader, rows)
}
