package annotate

import (
	"context"
	"errors"
	"testing"

	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/gender"
	"github.com/clemence/poliscope/internal/geo"
)

func newTestAnnotator(t *testing.T, workers int) *Annotator {
	t.Helper()

	gaz := geo.NewGazetteer(
		[]string{"Mayenne", "Paris"},
		[]string{"Paris", "Lyon", "Lille", "Laval"},
		[]string{"Bretagne"},
	)
	resolver := geo.NewResolver(gaz)
	dict := gender.NewDictionary([]gender.Entry{
		{Name: "Marie", Gender: domain.GenderFemale},
		{Name: "Jean", Gender: domain.GenderMale},
	}, nil)
	return New(resolver, dict, 20170507, workers)
}

func testUsers() []domain.User {
	return []domain.User{
		{ID: "1", Name: "Marie Dupont", RawLocation: "Paris, France"},
		{ID: "2", Name: "Jean Martin", RawLocation: "Lyon ou Lille"},
		{ID: "3", Name: "xq", RawLocation: "Laval, Québec"},
		{ID: "4", Name: "", RawLocation: ""},
	}
}

func TestRunAnnotatesLocationAndGender(t *testing.T) {
	a := newTestAnnotator(t, 3)
	users := testUsers()

	if err := a.Run(context.Background(), users); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if users[0].Location.Ville != "paris" || !users[0].Location.France {
		t.Fatalf("unexpected location for user 1: %+v", users[0].Location)
	}
	if users[0].Gender != domain.GenderFemale {
		t.Fatalf("expected f for user 1, got %q", users[0].Gender)
	}
	if users[1].Gender != domain.GenderMale {
		t.Fatalf("expected m for user 2, got %q", users[1].Gender)
	}
	if users[2].Location.Located() {
		t.Fatalf("the Canadian Laval must stay unlocated, got %+v", users[2].Location)
	}
	if users[3].Location.Located() || users[3].Gender != domain.GenderUnknown {
		t.Fatalf("empty fields must stay missing: %+v", users[3])
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	serial := newTestAnnotator(t, 1)
	parallel := newTestAnnotator(t, 8)

	// "Lyon ou Lille" is a genuine tie; its resolution must not depend on
	// how the work is scheduled.
	first := testUsers()
	second := testUsers()
	if err := serial.Run(context.Background(), first); err != nil {
		t.Fatalf("serial Run: %v", err)
	}
	for round := 0; round < 5; round++ {
		users := testUsers()
		if err := parallel.Run(context.Background(), users); err != nil {
			t.Fatalf("parallel Run: %v", err)
		}
		second = users
		for i := range first {
			if first[i].Location != second[i].Location {
				t.Fatalf("round %d: user %s resolved to %+v then %+v",
					round, first[i].ID, first[i].Location, second[i].Location)
			}
		}
	}
}

func TestRunRejectsDuplicateIDs(t *testing.T) {
	a := newTestAnnotator(t, 2)
	users := []domain.User{{ID: "1"}, {ID: "1"}}

	err := a.Run(context.Background(), users)
	var integrity *domain.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrity.Check != "users/id" {
		t.Fatalf("unexpected check %q", integrity.Check)
	}
}

func TestRunRejectsMissingID(t *testing.T) {
	a := newTestAnnotator(t, 2)
	err := a.Run(context.Background(), []domain.User{{ID: ""}})
	var integrity *domain.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	a := newTestAnnotator(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx, testUsers()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
