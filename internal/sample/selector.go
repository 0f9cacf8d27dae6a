// Package sample selects the "informative" user subset and trims the
// bipartite matrix down to it.
package sample

import (
	"time"

	"github.com/clemence/poliscope/internal/config"
	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/matrix"
)

// Selector applies the study's activity and location rules.
type Selector struct {
	cfg config.PipelineConfig
}

// New builds a Selector from the pipeline configuration.
func New(cfg config.PipelineConfig) *Selector {
	return &Selector{cfg: cfg}
}

// UserActive implements the activity predicate: enough followers, enough
// statuses, and a last tweet on or after the cutoff. A missing count or
// last-tweeted date means excluded, never missing.
func (s *Selector) UserActive(followers, statuses *int, lastTweeted *time.Time) bool {
	if followers == nil || statuses == nil || lastTweeted == nil {
		return false
	}
	if *followers < s.cfg.MinFollowers || *statuses < s.cfg.MinStatuses {
		return false
	}
	return !lastTweeted.Before(s.cfg.ActiveSince())
}

// PoliticianActive applies the same predicate to a politician row; the
// registry carries no follower count, so only statuses and recency apply.
func (s *Selector) PoliticianActive(statuses *int, lastTweeted *time.Time) bool {
	if statuses == nil || lastTweeted == nil {
		return false
	}
	if *statuses < s.cfg.MinStatuses {
		return false
	}
	return !lastTweeted.Before(s.cfg.ActiveSince())
}

// AnnotateUsers fills the Active and Sample flags in place. Sample is
// active AND located; any missing input defaults to excluded.
func (s *Selector) AnnotateUsers(users []domain.User) {
	for i := range users {
		users[i].Active = s.UserActive(users[i].Followers, users[i].Statuses, users[i].LastTweeted)
		users[i].Sample = users[i].Active && users[i].Location.Located()
	}
}

// AnnotatePoliticians fills the Sample flag in place.
func (s *Selector) AnnotatePoliticians(politicians []domain.Politician) {
	for i := range politicians {
		politicians[i].Sample = s.PoliticianActive(politicians[i].Statuses, politicians[i].LastTweeted)
	}
}

// TrimStep records the matrix shape after one trim step.
type TrimStep struct {
	Name string
	Rows int
	Cols int
}

// Trim runs the four order-dependent trim steps over the artifact:
//
//  1. restrict rows to sampled users present in the matrix,
//  2. drop columns of politicians outside the sample,
//  3. drop rows following fewer than MinFollowing remaining politicians,
//  4. drop columns followed by fewer than MinFollowedBy remaining users.
//
// Alignment between the matrix and the starting-value vectors is
// re-validated after every step; any violation aborts with an
// IntegrityError. The returned steps describe the shrinking shape.
func (s *Selector) Trim(a *matrix.Artifact, users []domain.User, politicians []domain.Politician) (*matrix.Artifact, []TrimStep, error) {
	var steps []TrimStep
	record := func(name string, art *matrix.Artifact) {
		steps = append(steps, TrimStep{Name: name, Rows: len(art.Matrix.RowIDs), Cols: len(art.Matrix.ColIDs)})
	}

	var sampledRows []string
	for _, user := range users {
		if user.Sample && a.Matrix.HasRow(user.ID) {
			sampledRows = append(sampledRows, user.ID)
		}
	}
	if len(sampledRows) == 0 {
		return nil, nil, domain.Integrity("sample/empty", a.RunID, "no sampled user appears in the matrix")
	}

	trimmed, err := a.SelectRows(sampledRows)
	if err != nil {
		return nil, nil, err
	}
	record("sampled-users", trimmed)

	sampledByHandle := make(map[string]bool, len(politicians))
	for _, p := range politicians {
		sampledByHandle[p.Twitter] = p.Sample
	}
	var sampledCols []string
	for _, handle := range trimmed.Matrix.ColIDs {
		active, known := sampledByHandle[handle]
		if !known {
			return nil, nil, domain.Integrity("politicians/unknown-column", handle, "matrix column absent from the politician registry")
		}
		if active {
			sampledCols = append(sampledCols, handle)
		}
	}
	trimmed, err = trimmed.SelectCols(sampledCols)
	if err != nil {
		return nil, nil, err
	}
	record("active-politicians", trimmed)

	trimmed, err = trimmed.FilterRowsBySum(s.cfg.MinFollowing)
	if err != nil {
		return nil, nil, err
	}
	record("min-following", trimmed)

	trimmed, err = trimmed.FilterColsBySum(s.cfg.MinFollowedBy)
	if err != nil {
		return nil, nil, err
	}
	record("min-followed-by", trimmed)

	return trimmed, steps, nil
}
