// Package generator produces deterministic synthetic datasets shaped like
// the study's real inputs, for local runs and fixtures.
package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/matrix"
)

// Dataset contains generated users, politicians, and the follow matrix with
// its starting values.
type Dataset struct {
	Users       []domain.User
	Politicians []domain.Politician
	Artifact    *matrix.Artifact
}

// Generator synthesises study data from a seeded random source.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = DefaultConfig().NumUsers
	}
	if cfg.NumPoliticians <= 0 {
		cfg.NumPoliticians = DefaultConfig().NumPoliticians
	}
	if cfg.FollowDensity <= 0 {
		cfg.FollowDensity = DefaultConfig().FollowDensity
	}
	if cfg.PopularitySkew < 0 {
		cfg.PopularitySkew = DefaultConfig().PopularitySkew
	}
	if cfg.ForeignShare < 0 || cfg.ForeignShare > 1 {
		cfg.ForeignShare = DefaultConfig().ForeignShare
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

var (
	firstNames = []string{
		"marie", "jean", "pierre", "sophie", "claire", "luc", "camille",
		"nicolas", "isabelle", "julien", "nathalie", "paul", "laura",
		"thomas", "emma", "louis", "chloe", "antoine", "lea", "hugo",
	}
	lastNames = []string{
		"martin", "bernard", "dubois", "thomas", "robert", "richard",
		"petit", "durand", "leroy", "moreau", "simon", "laurent",
		"lefebvre", "michel", "garcia", "david", "bertrand", "roux",
	}
	frenchLocations = []string{
		"Paris", "Paris 15e", "Lyon", "Marseille", "Bordeaux, France",
		"Toulouse", "Nantes", "Lille", "Strasbourg", "Besançon",
		"Île-de-France", "Bretagne", "Rennes", "Montpellier", "France",
	}
	foreignLocations = []string{
		"Laval, Québec", "Bruxelles", "Genève", "Montréal, Canada",
		"New York", "London", "", "quelque part", "the internet",
	}
	parties  = []string{"LR", "PS", "EM", "FN", "EELV", "PCF", "MODEM"}
	mandates = []string{"depute", "senateur", "maire", "depute-europeen"}
)

// Generate synthesises the full dataset. It respects context cancellation
// between phases.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	users := make([]domain.User, g.cfg.NumUsers)
	for i := range users {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		users[i] = g.randomUser(i)
	}

	politicians := make([]domain.Politician, g.cfg.NumPoliticians)
	for i := range politicians {
		politicians[i] = g.randomPolitician(i)
	}

	artifact, err := g.randomMatrix(ctx, users, politicians)
	if err != nil {
		return Dataset{}, err
	}

	return Dataset{Users: users, Politicians: politicians, Artifact: artifact}, nil
}

func (g *Generator) randomUser(i int) domain.User {
	first := firstNames[g.rand.Intn(len(firstNames))]
	last := lastNames[g.rand.Intn(len(lastNames))]

	location := frenchLocations[g.rand.Intn(len(frenchLocations))]
	if g.rand.Float64() < g.cfg.ForeignShare {
		location = foreignLocations[g.rand.Intn(len(foreignLocations))]
	}

	var lastTweeted *time.Time
	if g.rand.Float64() < 0.9 {
		t := time.Date(2017, time.May, 7, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -g.rand.Intn(730))
		lastTweeted = &t
	}

	followers := g.rand.Intn(2000)
	statuses := g.rand.Intn(20000)

	return domain.User{
		ID:          fmt.Sprintf("USR-%06d", i+1),
		Name:        first + " " + last,
		RawLocation: location,
		Followers:   &followers,
		Statuses:    &statuses,
		LastTweeted: lastTweeted,
	}
}

func (g *Generator) randomPolitician(i int) domain.Politician {
	last := lastNames[g.rand.Intn(len(lastNames))]
	t := time.Date(2017, time.May, 7, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -g.rand.Intn(365))

	gender := domain.GenderMale
	if g.rand.Float64() < 0.4 {
		gender = domain.GenderFemale
	}

	statuses := 500 + g.rand.Intn(50000)

	return domain.Politician{
		ID:          fmt.Sprintf("POL-%04d", i+1),
		Twitter:     fmt.Sprintf("%s_%d", last, i+1),
		Party:       parties[g.rand.Intn(len(parties))],
		Mandate:     mandates[g.rand.Intn(len(mandates))],
		Statuses:    &statuses,
		LastTweeted: &t,
		Gender:      gender,
	}
}

// randomMatrix builds the 0/1 follow matrix. Popularity skew makes a few
// politicians attract a large share of follows, keeping the projected
// network non-trivial after trimming.
func (g *Generator) randomMatrix(ctx context.Context, users []domain.User, politicians []domain.Politician) (*matrix.Artifact, error) {
	rowIDs := make([]string, len(users))
	for i, user := range users {
		rowIDs[i] = user.ID
	}
	colIDs := make([]string, len(politicians))
	for j, p := range politicians {
		colIDs[j] = p.Twitter
	}

	m, err := matrix.NewBipartite(rowIDs, colIDs)
	if err != nil {
		return nil, err
	}

	popularity := make([]float64, len(colIDs))
	for j := range popularity {
		popularity[j] = g.cfg.FollowDensity * math.Pow(g.rand.Float64()+0.1, -g.cfg.PopularitySkew/4)
		if popularity[j] > 0.9 {
			popularity[j] = 0.9
		}
	}

	for i := range rowIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := range colIDs {
			if g.rand.Float64() < popularity[j] {
				m.Cells[i][j] = 1
			}
		}
	}

	rowStart := make([]float64, len(rowIDs))
	for i := range rowStart {
		rowStart[i] = g.rand.NormFloat64()
	}
	colStart := make([]float64, len(colIDs))
	for j := range colStart {
		colStart[j] = g.rand.NormFloat64()
	}

	return matrix.NewArtifact(m, rowStart, colStart)
}
