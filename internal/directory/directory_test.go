package directory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matheus3301/wpnew/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, db *store.DB) {
	t.Helper()
	if err := db.BulkUpsertContacts([]store.Contact{
		{JID: "111@s.whatsapp.net", Name: "Alice Smith"},
		{JID: "222@s.whatsapp.net", Name: "Alicia Keys"},
		{JID: "333@s.whatsapp.net", PushName: "Bob"},
	}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []store.Subscription{
		{JID: "222@s.whatsapp.net", Kind: store.KindDirect, RoomUpdatedAt: 9000},
		{JID: "team@g.us", Kind: store.KindGroup, Name: "Alpha Team", RoomUpdatedAt: 5000},
	} {
		if err := db.UpsertSubscription(&s); err != nil {
			t.Fatal(err)
		}
	}
}

func jids(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.JID
	}
	return out
}

func TestSearchUsersOnly(t *testing.T) {
	db := testDB(t)
	seed(t, db)
	d := New(db, nil)

	results, err := d.Search(context.Background(), "ali", false, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %v, want the two Ali* contacts", jids(results))
	}
	for _, r := range results {
		if r.Kind != store.KindDirect {
			t.Errorf("%s has kind %q, want d", r.JID, r.Kind)
		}
	}
}

func TestSearchIncludesRooms(t *testing.T) {
	db := testDB(t)
	seed(t, db)
	d := New(db, nil)

	results, err := d.Search(context.Background(), "alpha", true, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].JID != "team@g.us" {
		t.Errorf("got %v, want [team@g.us]", jids(results))
	}

	results, err = d.Search(context.Background(), "alpha", false, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("rooms leaked into user search: %v", jids(results))
	}
}

func TestSearchMatchesPhoneNumber(t *testing.T) {
	db := testDB(t)
	seed(t, db)
	d := New(db, nil)

	results, err := d.Search(context.Background(), "333", false, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].DisplayName != "Bob" {
		t.Errorf("got %+v, want Bob", results)
	}
}

func TestSearchBlankAndLimit(t *testing.T) {
	db := testDB(t)
	seed(t, db)
	d := New(db, nil)

	results, err := d.Search(context.Background(), "   ", false, 10)
	if err != nil || results != nil {
		t.Errorf("blank search = %v, %v; want nil, nil", results, err)
	}

	results, err = d.Search(context.Background(), "a", true, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("limit 1 returned %d results", len(results))
	}
}

type staticSource []store.Candidate

func (s staticSource) DirectoryCandidates(bool) ([]store.Candidate, error) { return s, nil }

func TestSearchTiesBrokenByRecency(t *testing.T) {
	d := New(staticSource{
		{JID: "1@s", Kind: store.KindDirect, DisplayName: "Sam", RoomUpdatedAt: 10},
		{JID: "2@s", Kind: store.KindDirect, DisplayName: "Sam", RoomUpdatedAt: 30},
		{JID: "3@s", Kind: store.KindDirect, DisplayName: "Sam", RoomUpdatedAt: 20},
	}, nil)

	results, err := d.Search(context.Background(), "sam", false, 10)
	if err != nil {
		t.Fatal(err)
	}
	got := jids(results)
	want := []string{"2@s", "3@s", "1@s"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

type failingSource struct{}

func (failingSource) DirectoryCandidates(bool) ([]store.Candidate, error) {
	return nil, errors.New("disk on fire")
}

func TestSearchErrors(t *testing.T) {
	if _, err := New(failingSource{}, nil).Search(context.Background(), "x", false, 0); err == nil {
		t.Error("expected source error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(staticSource{}, nil).Search(ctx, "x", false, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
