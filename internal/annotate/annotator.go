// Package annotate runs the location resolver and gender inferrer over the
// user table with a bounded worker pool.
package annotate

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"sync"

	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/gender"
	"github.com/clemence/poliscope/internal/geo"
)

// Annotator decorates users with locations and genders. Ambiguous gazetteer
// matches are broken with a per-user random source derived from the global
// seed and the user id, so results do not depend on worker scheduling.
type Annotator struct {
	resolver *geo.Resolver
	dict     *gender.Dictionary
	seed     int64
	workers  int
}

// New builds an Annotator. Workers defaults to 4 when non-positive.
func New(resolver *geo.Resolver, dict *gender.Dictionary, seed int64, workers int) *Annotator {
	if workers <= 0 {
		workers = 4
	}
	return &Annotator{
		resolver: resolver,
		dict:     dict,
		seed:     seed,
		workers:  workers,
	}
}

// Run annotates every user in place. User ids must be unique and
// non-missing; a violation aborts before any work starts.
func (a *Annotator) Run(ctx context.Context, users []domain.User) error {
	seen := make(map[string]int, len(users))
	for i, user := range users {
		if user.ID == "" {
			return domain.Integrity("users/id", "<empty>", "missing id at row %d", i)
		}
		if prev, dup := seen[user.ID]; dup {
			return domain.Integrity("users/id", user.ID, "duplicate id at rows %d and %d", prev, i)
		}
		seen[user.ID] = i
	}

	indexCh := make(chan int)
	errCh := make(chan error, len(users))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			a.annotateOne(&users[idx])
			if err := ctx.Err(); err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}
		}
	}

	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := range users {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}
	return ctx.Err()
}

func (a *Annotator) annotateOne(user *domain.User) {
	rng := rand.New(rand.NewSource(a.userSeed(user.ID)))
	user.Location = a.resolver.Resolve(user.RawLocation, rng)
	user.Gender = a.dict.Infer(user.Name)
}

// userSeed folds the user id into the global seed so each user gets a
// stable, scheduling-independent random stream.
func (a *Annotator) userSeed(id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return a.seed ^ int64(h.Sum64())
}
