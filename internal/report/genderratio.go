// Package report produces the summary tables and the ERGM hand-off
// artifacts of the pipeline.
package report

import (
	"strconv"

	"github.com/clemence/poliscope/internal/dataset"
	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/matrix"
)

// GenderRatioRow summarizes the follower base of one politician: total
// follower counts and how many of them carry a gender, overall and
// restricted to the informative sample.
type GenderRatioRow struct {
	Twitter string

	Followers int
	Gendered  int
	Male      int
	Female    int

	SampleFollowers int
	SampleGendered  int
	SampleMale      int
	SampleFemale    int
}

// GenderRatios computes per-politician gender counts from the bipartite
// matrix and the annotated user table. Every matrix row must have an
// annotated user; a missing row aborts with an IntegrityError.
func GenderRatios(b *matrix.Bipartite, users []domain.User) ([]GenderRatioRow, error) {
	byID := make(map[string]domain.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	rows := make([]GenderRatioRow, len(b.ColIDs))
	for j, handle := range b.ColIDs {
		rows[j].Twitter = handle
	}

	for i, id := range b.RowIDs {
		user, ok := byID[id]
		if !ok {
			return nil, domain.Integrity("users/missing-row", id, "matrix row absent from the user table")
		}
		for j, cell := range b.Cells[i] {
			if cell == 0 {
				continue
			}
			row := &rows[j]
			row.Followers++
			tally(row, user, false)
			if user.Sample {
				row.SampleFollowers++
				tally(row, user, true)
			}
		}
	}
	return rows, nil
}

func tally(row *GenderRatioRow, user domain.User, inSample bool) {
	if user.Gender == domain.GenderUnknown {
		return
	}
	if inSample {
		row.SampleGendered++
		if user.Gender == domain.GenderMale {
			row.SampleMale++
		} else {
			row.SampleFemale++
		}
		return
	}
	row.Gendered++
	if user.Gender == domain.GenderMale {
		row.Male++
	} else {
		row.Female++
	}
}

var genderRatioHeader = []string{
	"twitter", "followers", "gendered", "male", "female",
	"sample_followers", "sample_gendered", "sample_male", "sample_female",
}

// WriteGenderRatios writes the summary table as CSV.
func WriteGenderRatios(path string, rows []GenderRatioRow) error {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.Twitter,
			strconv.Itoa(row.Followers),
			strconv.Itoa(row.Gendered),
			strconv.Itoa(row.Male),
			strconv.Itoa(row.Female),
			strconv.Itoa(row.SampleFollowers),
			strconv.Itoa(row.SampleGendered),
			strconv.Itoa(row.SampleMale),
			strconv.Itoa(row.SampleFemale),
		})
	}
	return dataset.WriteCSV(path, genderRatioHeader, out)
}
