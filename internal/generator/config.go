package generator

// Config drives the synthetic dataset generator.
type Config struct {
	NumUsers       int
	NumPoliticians int

	// FollowDensity is the base probability that a user follows any given
	// politician before popularity skew is applied.
	FollowDensity float64

	// PopularitySkew stretches follow probabilities so a few politicians
	// attract most followers, as in the real data. 0 means uniform.
	PopularitySkew float64

	// ForeignShare is the fraction of users given a non-French location.
	ForeignShare float64

	Seed int64
}

// DefaultConfig returns baseline settings producing a dataset small enough
// for local runs but dense enough to survive the trim thresholds.
func DefaultConfig() Config {
	return Config{
		NumUsers:       5000,
		NumPoliticians: 120,
		FollowDensity:  0.08,
		PopularitySkew: 2.0,
		ForeignShare:   0.15,
		Seed:           42,
	}
}
