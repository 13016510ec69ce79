package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/wpnew/internal/bus"
	"github.com/matheus3301/wpnew/internal/store"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func waitRosterChange(t *testing.T, ch <-chan bus.Event) RosterChange {
	t.Helper()
	select {
	case evt := <-ch:
		if evt.Kind != bus.KindRosterChanged {
			t.Fatalf("event kind = %q, want %s", evt.Kind, bus.KindRosterChanged)
		}
		rc, ok := evt.Payload.(RosterChange)
		if !ok {
			t.Fatalf("payload = %T, want RosterChange", evt.Payload)
		}
		return rc
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for roster.changed event")
		return RosterChange{}
	}
}

func TestIngestActivity(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, nil)

	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()

	if err := e.IngestActivity(Activity{ChatJID: "a@s", At: 1000}); err != nil {
		t.Fatal(err)
	}

	sub, err := db.GetSubscription("a@s")
	if err != nil {
		t.Fatal(err)
	}
	if sub == nil || sub.Kind != store.KindDirect || sub.RoomUpdatedAt != 1000 {
		t.Errorf("got %+v, want direct subscription at 1000", sub)
	}

	rc := waitRosterChange(t, ch)
	if rc.Reason != ReasonActivity || len(rc.JIDs) != 1 || rc.JIDs[0] != "a@s" {
		t.Errorf("change = %+v", rc)
	}
}

func TestIngestActivityReorders(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db, bus.New(), nil)

	for _, a := range []Activity{
		{ChatJID: "a@s", At: 1000},
		{ChatJID: "b@s", At: 2000},
		{ChatJID: "a@s", At: 3000},
	} {
		if err := e.IngestActivity(a); err != nil {
			t.Fatal(err)
		}
	}

	roster, err := db.ListRoster(store.KindDirect, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(roster) != 2 || roster[0].JID != "a@s" {
		t.Errorf("roster = %+v, want a@s first", roster)
	}
}

func TestIngestGroup(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db, bus.New(), nil)

	if err := e.IngestGroup(GroupJoined{JID: "team@g", Name: "Team"}); err != nil {
		t.Fatal(err)
	}
	sub, err := db.GetSubscription("team@g")
	if err != nil {
		t.Fatal(err)
	}
	if sub == nil || sub.Kind != store.KindGroup || sub.Name != "Team" || sub.RoomUpdatedAt == 0 {
		t.Errorf("got %+v, want named group with activity", sub)
	}
}

func TestIngestContactsSetsCheckpoint(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, nil)

	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()

	if err := e.IngestContacts([]store.Contact{
		{JID: "a@s", Name: "A"},
		{JID: "b@s", PushName: "B"},
	}); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := db.Checkpoint(store.CheckpointContactsSyncedAt); err != nil || !ok {
		t.Errorf("checkpoint missing: ok=%v err=%v", ok, err)
	}
	if rc := waitRosterChange(t, ch); rc.Reason != ReasonContacts {
		t.Errorf("reason = %q, want %q", rc.Reason, ReasonContacts)
	}
}

// TestEngineBusSubscription verifies wa.* events reach the store.
func TestEngineBusSubscription(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, zap.NewNop())

	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()

	e.Start(context.Background())
	defer e.Stop()

	b.Publish(bus.NewEvent(bus.KindContact, &store.Contact{JID: "c@s", PushName: "Cee"}))
	waitRosterChange(t, ch)
	b.Publish(bus.NewEvent(bus.KindActivity, Activity{ChatJID: "c@s", At: 5000}))
	waitRosterChange(t, ch)

	sub, err := db.GetSubscription("c@s")
	if err != nil {
		t.Fatal(err)
	}
	if sub == nil || sub.DisplayName != "Cee" {
		t.Errorf("got %+v, want display name Cee", sub)
	}

	// Unknown payloads are ignored without publishing.
	b.Publish(bus.NewEvent(bus.KindActivity, "garbage"))
	select {
	case evt := <-ch:
		t.Errorf("unexpected event %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestIngestConversations(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, nil)

	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()

	if err := e.IngestConversations([]Conversation{
		{JID: "a@s", Kind: store.KindDirect, At: 1000, Unread: 2},
		{JID: "team@g", Kind: store.KindGroup, Name: "Team", At: 3000},
		{JID: "b@s", Kind: store.KindDirect, Name: "Bee", At: 2000},
	}); err != nil {
		t.Fatal(err)
	}

	roster, err := db.ListRoster("", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"team@g", "b@s", "a@s"}
	if len(roster) != len(want) {
		t.Fatalf("got %d subscriptions, want %d", len(roster), len(want))
	}
	for i, jid := range want {
		if roster[i].JID != jid {
			t.Errorf("roster[%d] = %q, want %q", i, roster[i].JID, jid)
		}
	}
	if roster[2].UnreadCount != 2 {
		t.Errorf("unread = %d, want 2", roster[2].UnreadCount)
	}
	if rc := waitRosterChange(t, ch); rc.Reason != ReasonHistory {
		t.Errorf("reason = %q, want %q", rc.Reason, ReasonHistory)
	}

	if err := e.IngestConversations([]Conversation{{JID: "x@s", Kind: "z"}}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestIngestGroupsKeepsKnownRecency(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db, bus.New(), nil)

	if err := e.IngestActivity(Activity{ChatJID: "team@g", Kind: store.KindGroup, At: 9000}); err != nil {
		t.Fatal(err)
	}
	if err := e.IngestGroups([]GroupJoined{
		{JID: "team@g", Name: "Team", At: 100},
		{JID: "other@g", Name: "Other", At: 200},
	}); err != nil {
		t.Fatal(err)
	}

	sub, err := db.GetSubscription("team@g")
	if err != nil {
		t.Fatal(err)
	}
	if sub.RoomUpdatedAt != 9000 || sub.Name != "Team" {
		t.Errorf("got %+v, want Team at 9000", sub)
	}
}

func TestIngestLIDMappingsMergesConversations(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, zap.NewNop())

	if err := e.IngestActivity(Activity{ChatJID: "3917@lid", At: 7000}); err != nil {
		t.Fatal(err)
	}
	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()

	e.Start(context.Background())
	defer e.Stop()
	b.Publish(bus.NewEvent(bus.KindLIDMappings, []store.LIDMapping{{LID: "3917", PN: "5511"}}))

	rc := waitRosterChange(t, ch)
	if rc.Reason != ReasonLIDs {
		t.Errorf("reason = %q, want %q", rc.Reason, ReasonLIDs)
	}
	sub, err := db.GetSubscription("5511@s.whatsapp.net")
	if err != nil {
		t.Fatal(err)
	}
	if sub == nil || sub.RoomUpdatedAt != 7000 {
		t.Errorf("got %+v, want the LID conversation under the phone number", sub)
	}
	if sub, _ := db.GetSubscription("3917@lid"); sub != nil {
		t.Error("LID conversation still listed")
	}
}

func TestIngestActivityMapsKnownLID(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, nil)
	if err := db.SyncLIDMap([]store.LIDMapping{{LID: "3917", PN: "5511"}}); err != nil {
		t.Fatal(err)
	}

	ch, unsub := b.Subscribe("roster.", 10)
	defer unsub()
	if err := e.IngestActivity(Activity{ChatJID: "3917@lid", At: 1000}); err != nil {
		t.Fatal(err)
	}

	rc := waitRosterChange(t, ch)
	if len(rc.JIDs) != 1 || rc.JIDs[0] != "5511@s.whatsapp.net" {
		t.Errorf("change = %+v, want the phone number JID", rc)
	}
	if sub, _ := db.GetSubscription("3917@lid"); sub != nil {
		t.Error("activity stored under the LID")
	}
}
