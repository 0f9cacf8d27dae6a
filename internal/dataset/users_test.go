package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clemence/poliscope/internal/domain"
)

func intPtr(v int) *int { return &v }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadUsersBaseColumns(t *testing.T) {
	path := writeFile(t, "users.csv",
		"id,name,location,followers,statuses,last_tweeted\n"+
			"1,Marie Dupont,\"Paris, France\",120,950,2017-03-01\n"+
			"2,Jean Martin,,30,400,\n")

	users, err := LoadUsers(path)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].RawLocation != "Paris, France" || users[0].Followers == nil || *users[0].Followers != 120 {
		t.Fatalf("unexpected first user: %+v", users[0])
	}
	want := time.Date(2017, time.March, 1, 0, 0, 0, 0, time.UTC)
	if users[0].LastTweeted == nil || !users[0].LastTweeted.Equal(want) {
		t.Fatalf("unexpected last_tweeted: %v", users[0].LastTweeted)
	}
	if users[1].LastTweeted != nil {
		t.Fatal("empty date must load as missing")
	}
}

func TestLoadUsersRejectsMissingColumn(t *testing.T) {
	path := writeFile(t, "users.csv", "id,name\n1,Marie\n")
	if _, err := LoadUsers(path); err == nil {
		t.Fatal("expected an error for missing columns")
	}
}

func TestLoadUsersRejectsBadInteger(t *testing.T) {
	path := writeFile(t, "users.csv",
		"id,name,location,followers,statuses,last_tweeted\n"+
			"1,Marie,,many,950,\n")
	if _, err := LoadUsers(path); err == nil {
		t.Fatal("expected an error for a non-numeric count")
	}
}

func TestAnnotatedUsersRoundTrip(t *testing.T) {
	date := time.Date(2017, time.April, 12, 0, 0, 0, 0, time.UTC)
	users := []domain.User{
		{
			ID: "1", Name: "Marie Dupont", RawLocation: "Paris 15e",
			Followers: intPtr(120), Statuses: intPtr(950), LastTweeted: &date,
			Active: true,
			Location: domain.Location{
				Departement: "paris", Ville: "paris", Region: "ile de france", France: true,
			},
			Sample: true,
			Gender: domain.GenderFemale,
		},
		{ID: "2", Name: "xq", Followers: intPtr(1), Statuses: intPtr(2)},
	}

	path := filepath.Join(t.TempDir(), "annotated.csv")
	if err := WriteAnnotatedUsers(path, users); err != nil {
		t.Fatalf("WriteAnnotatedUsers: %v", err)
	}
	loaded, err := LoadUsers(path)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 users, got %d", len(loaded))
	}
	got := loaded[0]
	if !got.Active || !got.Sample || got.Gender != domain.GenderFemale {
		t.Fatalf("derived flags did not survive: %+v", got)
	}
	if got.Location != users[0].Location {
		t.Fatalf("location did not survive: %+v", got.Location)
	}
	if loaded[1].Location.Located() || loaded[1].Sample {
		t.Fatalf("missing annotations must stay missing: %+v", loaded[1])
	}
}

func TestLoadPoliticiansRoundTrip(t *testing.T) {
	date := time.Date(2017, time.February, 1, 0, 0, 0, 0, time.UTC)
	politicians := []domain.Politician{
		{ID: "p1", Twitter: "jlmelenchon", Party: "FI", Mandate: "depute",
			Statuses: intPtr(5000), LastTweeted: &date, Gender: domain.GenderMale, Sample: true},
		{ID: "p2", Twitter: "ghost", Party: "LR", Mandate: "senateur"},
	}

	path := filepath.Join(t.TempDir(), "politicians.csv")
	if err := WriteAnnotatedPoliticians(path, politicians); err != nil {
		t.Fatalf("WriteAnnotatedPoliticians: %v", err)
	}
	loaded, err := LoadPoliticians(path)
	if err != nil {
		t.Fatalf("LoadPoliticians: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 politicians, got %d", len(loaded))
	}
	if loaded[0].Twitter != "jlmelenchon" || !loaded[0].Sample {
		t.Fatalf("unexpected first politician: %+v", loaded[0])
	}
	if loaded[1].LastTweeted != nil || loaded[1].Sample {
		t.Fatalf("unexpected second politician: %+v", loaded[1])
	}
}

func TestMissingCountsRoundTripAsEmpty(t *testing.T) {
	path := writeFile(t, "users.csv",
		"id,name,location,followers,statuses,last_tweeted\n"+
			"1,Marie,,,,\n")

	users, err := LoadUsers(path)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if users[0].Followers != nil || users[0].Statuses != nil {
		t.Fatalf("empty counts must load as missing: %+v", users[0])
	}

	out := filepath.Join(t.TempDir(), "annotated.csv")
	if err := WriteAnnotatedUsers(out, users); err != nil {
		t.Fatalf("WriteAnnotatedUsers: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "1,Marie,,,,") {
		t.Fatalf("missing counts must be written back as empty fields, got: %s", data)
	}

	reloaded, err := LoadUsers(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded[0].Followers != nil || reloaded[0].Statuses != nil {
		t.Fatalf("missing counts did not survive the round trip: %+v", reloaded[0])
	}
}

func TestLoadUsersMissingFile(t *testing.T) {
	_, err := LoadUsers(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
