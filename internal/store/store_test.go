package store

import (
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already ran Migrate once.
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 2 {
		t.Errorf("version = %d, want 2", result.Version)
	}
	if result.Dirty {
		t.Error("migration left the schema dirty")
	}
}

func TestUpsertSubscriptionRejectsUnknownKind(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertSubscription(&Subscription{JID: "x@s", Kind: "c"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestListRosterOrdersByRecency(t *testing.T) {
	db := testDB(t)

	subs := []Subscription{
		{JID: "alice@s", Kind: KindDirect, Name: "Alice", RoomUpdatedAt: 1000},
		{JID: "bob@s", Kind: KindDirect, Name: "Bob", RoomUpdatedAt: 3000},
		{JID: "team@g", Kind: KindGroup, Name: "Team", RoomUpdatedAt: 5000},
		{JID: "carol@s", Kind: KindDirect, Name: "Carol", RoomUpdatedAt: 2000},
	}
	for i := range subs {
		if err := db.UpsertSubscription(&subs[i]); err != nil {
			t.Fatal(err)
		}
	}

	direct, err := db.ListRoster(KindDirect, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"bob@s", "carol@s", "alice@s"}
	if len(direct) != len(want) {
		t.Fatalf("got %d direct, want %d", len(direct), len(want))
	}
	for i, jid := range want {
		if direct[i].JID != jid {
			t.Errorf("direct[%d] = %q, want %q", i, direct[i].JID, jid)
		}
	}

	all, err := db.ListRoster("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || all[0].JID != "team@g" {
		t.Errorf("all kinds = %+v, want team@g first of 4", all)
	}

	limited, err := db.ListRoster(KindDirect, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d rows", len(limited))
	}
}

func TestUpsertSubscriptionKeepsNameAndRecency(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertSubscription(&Subscription{JID: "a@s", Kind: KindDirect, Name: "A", RoomUpdatedAt: 2000}); err != nil {
		t.Fatal(err)
	}
	// Older activity and an empty name must not clobber what we know.
	if err := db.UpsertSubscription(&Subscription{JID: "a@s", Kind: KindDirect, RoomUpdatedAt: 1000}); err != nil {
		t.Fatal(err)
	}

	s, err := db.GetSubscription("a@s")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		t.Fatal("subscription missing")
	}
	if s.Name != "A" {
		t.Errorf("name = %q, want A", s.Name)
	}
	if s.RoomUpdatedAt != 2000 {
		t.Errorf("room_updated_at = %d, want 2000", s.RoomUpdatedAt)
	}
}

func TestTouchSubscription(t *testing.T) {
	db := testDB(t)

	if err := db.TouchSubscription("new@s", KindDirect, 500); err != nil {
		t.Fatal(err)
	}
	if err := db.TouchSubscription("new@s", KindDirect, 900); err != nil {
		t.Fatal(err)
	}
	if err := db.TouchSubscription("new@s", KindDirect, 100); err != nil {
		t.Fatal(err)
	}

	s, err := db.GetSubscription("new@s")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.RoomUpdatedAt != 900 {
		t.Errorf("got %+v, want room_updated_at 900", s)
	}
	// Unnamed direct chats fall back to the JID.
	if s.DisplayName != "new@s" {
		t.Errorf("display name = %q, want new@s", s.DisplayName)
	}
}

func TestGetSubscriptionMissing(t *testing.T) {
	db := testDB(t)

	s, err := db.GetSubscription("missing@s")
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Errorf("expected nil for missing subscription, got %+v", s)
	}
}

func TestDisplayNameFallsBackToContact(t *testing.T) {
	db := testDB(t)

	if err := db.TouchSubscription("d@s", KindDirect, 1); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertContact(&Contact{JID: "d@s", PushName: "Dee"}); err != nil {
		t.Fatal(err)
	}

	s, err := db.GetSubscription("d@s")
	if err != nil {
		t.Fatal(err)
	}
	if s.DisplayName != "Dee" {
		t.Errorf("display name = %q, want Dee", s.DisplayName)
	}
}

func TestRosterCount(t *testing.T) {
	db := testDB(t)

	for _, s := range []Subscription{
		{JID: "a@s", Kind: KindDirect},
		{JID: "b@s", Kind: KindDirect},
		{JID: "g@g", Kind: KindGroup},
	} {
		if err := db.UpsertSubscription(&s); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := db.RosterCount()
	if err != nil {
		t.Fatal(err)
	}
	if counts[KindDirect] != 2 || counts[KindGroup] != 1 {
		t.Errorf("counts = %v, want d=2 g=1", counts)
	}
}

func TestContactUpsertPreservesNames(t *testing.T) {
	db := testDB(t)

	if err := db.BulkUpsertContacts([]Contact{
		{JID: "a@s", Name: "Alice", PushName: "ali"},
		{JID: "b@s", PushName: "bobby"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertContact(&Contact{JID: "a@s", PushName: "alice!"}); err != nil {
		t.Fatal(err)
	}

	c, err := db.GetContact("a@s")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Alice" || c.PushName != "alice!" {
		t.Errorf("got %+v, want Name=Alice PushName=alice!", c)
	}

	missing, err := db.GetContact("zzz@s")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown contact")
	}
}

func TestCheckpoint(t *testing.T) {
	db := testDB(t)

	if _, ok, err := db.Checkpoint(CheckpointContactsSyncedAt); err != nil || ok {
		t.Fatalf("fresh checkpoint: ok=%v err=%v", ok, err)
	}
	if err := db.SetCheckpoint(CheckpointContactsSyncedAt, "1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetCheckpoint(CheckpointContactsSyncedAt, "2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.Checkpoint(CheckpointContactsSyncedAt)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "2" {
		t.Errorf("checkpoint = %q (ok=%v), want 2", v, ok)
	}
}

func TestDirectoryCandidates(t *testing.T) {
	db := testDB(t)

	if err := db.BulkUpsertContacts([]Contact{
		{JID: "alice@s", Name: "Alice"},
		{JID: "bob@s", PushName: "Bobby"},
	}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []Subscription{
		{JID: "alice@s", Kind: KindDirect, RoomUpdatedAt: 700},
		{JID: "stranger@s", Kind: KindDirect, Name: "Stranger", RoomUpdatedAt: 300},
		{JID: "team@g", Kind: KindGroup, Name: "Team", RoomUpdatedAt: 900},
	} {
		if err := db.UpsertSubscription(&s); err != nil {
			t.Fatal(err)
		}
	}

	users, err := db.DirectoryCandidates(false)
	if err != nil {
		t.Fatal(err)
	}
	wantUsers := []Candidate{
		{JID: "alice@s", Kind: KindDirect, DisplayName: "Alice", RoomUpdatedAt: 700},
		{JID: "stranger@s", Kind: KindDirect, DisplayName: "Stranger", RoomUpdatedAt: 300},
		{JID: "bob@s", Kind: KindDirect, DisplayName: "Bobby", RoomUpdatedAt: 0},
	}
	if len(users) != len(wantUsers) {
		t.Fatalf("got %d candidates, want %d: %+v", len(users), len(wantUsers), users)
	}
	for i, want := range wantUsers {
		if users[i] != want {
			t.Errorf("candidate[%d] = %+v, want %+v", i, users[i], want)
		}
	}

	withRooms, err := db.DirectoryCandidates(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(withRooms) != 4 || withRooms[0].JID != "team@g" || withRooms[0].Kind != KindGroup {
		t.Errorf("with rooms = %+v, want team@g first of 4", withRooms)
	}
}
