package store

import "testing"

func TestLookupPN(t *testing.T) {
	db := testDB(t)
	if err := db.SyncLIDMap([]LIDMapping{{LID: "3917077286968", PN: "5511999990000"}}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		jid    string
		want   string
		wantOK bool
	}{
		{"3917077286968@lid", "5511999990000@s.whatsapp.net", true},
		{"1111@lid", "", false},
		{"5511999990000@s.whatsapp.net", "", false},
	}
	for _, tt := range tests {
		got, ok, err := db.LookupPN(tt.jid)
		if err != nil {
			t.Fatalf("LookupPN(%q): %v", tt.jid, err)
		}
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("LookupPN(%q) = %q, %v; want %q, %v", tt.jid, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSyncLIDMapReplaces(t *testing.T) {
	db := testDB(t)
	if err := db.SyncLIDMap([]LIDMapping{{LID: "1", PN: "10"}, {LID: "2", PN: "20"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.SyncLIDMap([]LIDMapping{{LID: "2", PN: "21"}, {LID: "", PN: "99"}}); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := db.LookupPN("1@lid"); ok {
		t.Error("mapping 1 survived a replace")
	}
	pn, ok, err := db.LookupPN("2@lid")
	if err != nil || !ok || pn != "21@s.whatsapp.net" {
		t.Errorf("LookupPN(2@lid) = %q, %v, %v; want 21@s.whatsapp.net", pn, ok, err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM lid_map`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("lid_map has %d rows, want 1", n)
	}
}

func TestReconcileLIDsMergesIntoPhoneNumber(t *testing.T) {
	db := testDB(t)

	subs := []Subscription{
		{JID: "3917@lid", Kind: KindDirect, RoomUpdatedAt: 9000, UnreadCount: 2},
		{JID: "5511@s.whatsapp.net", Kind: KindDirect, Name: "Alice", RoomUpdatedAt: 1000},
		{JID: "4242@lid", Kind: KindDirect, Name: "Bob", RoomUpdatedAt: 3000},
		{JID: "7777@lid", Kind: KindDirect, RoomUpdatedAt: 500},
	}
	if err := db.BulkUpsertSubscriptions(subs); err != nil {
		t.Fatal(err)
	}
	contacts := []Contact{
		{JID: "3917@lid", PushName: "ali"},
		{JID: "5511@s.whatsapp.net", Name: "Alice"},
	}
	if err := db.BulkUpsertContacts(contacts); err != nil {
		t.Fatal(err)
	}
	if err := db.SyncLIDMap([]LIDMapping{{LID: "3917", PN: "5511"}, {LID: "4242", PN: "8888"}}); err != nil {
		t.Fatal(err)
	}

	merged, err := db.ReconcileLIDs()
	if err != nil {
		t.Fatal(err)
	}
	if merged != 2 {
		t.Errorf("merged = %d, want 2", merged)
	}

	alice, err := db.GetSubscription("5511@s.whatsapp.net")
	if err != nil {
		t.Fatal(err)
	}
	if alice.RoomUpdatedAt != 9000 || alice.UnreadCount != 2 || alice.Name != "Alice" {
		t.Errorf("alice = %+v, want LID activity folded in and name kept", alice)
	}
	bob, err := db.GetSubscription("8888@s.whatsapp.net")
	if err != nil {
		t.Fatal(err)
	}
	if bob == nil || bob.Kind != KindDirect || bob.Name != "Bob" || bob.RoomUpdatedAt != 3000 {
		t.Errorf("bob = %+v, want a direct subscription moved from the LID", bob)
	}
	for _, jid := range []string{"3917@lid", "4242@lid"} {
		if s, _ := db.GetSubscription(jid); s != nil {
			t.Errorf("%s still stored", jid)
		}
	}
	if s, _ := db.GetSubscription("7777@lid"); s == nil {
		t.Error("unmapped LID subscription was removed")
	}

	c, err := db.GetContact("5511@s.whatsapp.net")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Alice" || c.PushName != "ali" {
		t.Errorf("contact = %+v, want name kept and push name filled", c)
	}
	if c, _ := db.GetContact("3917@lid"); c != nil {
		t.Error("LID contact still stored")
	}
}

func TestReconcileLIDsNothingMapped(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertSubscription(&Subscription{JID: "1@lid", Kind: KindDirect}); err != nil {
		t.Fatal(err)
	}
	merged, err := db.ReconcileLIDs()
	if err != nil {
		t.Fatal(err)
	}
	if merged != 0 {
		t.Errorf("merged = %d, want 0", merged)
	}
}
