package domain

import "time"

// Gender is the inferred gender of a user, derived from the first token of
// the display name. The empty value means no dictionary entry matched.
type Gender string

// Gender values. GenderUnknown is a legitimate domain outcome, not an error.
const (
	GenderMale    Gender = "m"
	GenderFemale  Gender = "f"
	GenderUnknown Gender = ""
)

// Location is the best-effort administrative location resolved from a user's
// free-text location field. Empty fields mean the tier did not match.
type Location struct {
	Departement string
	Ville       string
	Region      string
	// France is true when the raw text itself mentions France, independent
	// of any gazetteer tier matching.
	France bool
}

// Located reports whether the user could be placed in France: either the
// text mentions France or at least one gazetteer tier matched.
func (l Location) Located() bool {
	return l.France || l.Departement != "" || l.Ville != "" || l.Region != ""
}

// User is one row of the Twitter user table. The annotation pipeline fills
// the derived fields. Followers, Statuses and LastTweeted are nil when the
// source column was empty: a missing count is not a zero count.
type User struct {
	ID          string
	Name        string
	RawLocation string
	Followers   *int
	Statuses    *int
	LastTweeted *time.Time

	// Derived by the pipeline.
	Active   bool
	Location Location
	Sample   bool
	Gender   Gender
}
