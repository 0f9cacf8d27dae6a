package domain

import "time"

// Politician is one row of the politician registry. Statuses and
// LastTweeted are nil when the source column was empty.
type Politician struct {
	ID          string
	Twitter     string
	Party       string
	Mandate     string
	Statuses    *int
	LastTweeted *time.Time
	Gender      Gender

	// Sample is derived by the selector using the same activity predicate
	// as for users.
	Sample bool
}
