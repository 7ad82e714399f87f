package feed

import (
	"fmt"
	"testing"

	"TeleAdmin/models"
)

func TestEntriesNewestFirstAndBounded(t *testing.T) {
	f := New(nil)
	for i := 0; i < MaxEntries+10; i++ {
		f.add(models.Notification{Message: fmt.Sprintf("note %d", i)})
	}
	entries := f.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("entries = %d, want %d", len(entries), MaxEntries)
	}
	if entries[0].Message != fmt.Sprintf("note %d", MaxEntries+9) {
		t.Errorf("newest entry first, got %q", entries[0].Message)
	}
	if entries[MaxEntries-1].Message != "note 10" {
		t.Errorf("oldest surviving entry = %q, want %q", entries[MaxEntries-1].Message, "note 10")
	}
}

func TestDispatchRoutesTopics(t *testing.T) {
	f := New(nil)

	f.dispatch(TopicAdminNotifications, []byte(`{"title":"New review","message":"flagged"}`))
	if got := f.Entries(); len(got) != 1 || got[0].Title != "New review" {
		t.Fatalf("notification not recorded: %v", got)
	}

	// Malformed JSON still lands in the feed as plain text.
	f.dispatch(TopicAdminNotifications, []byte("plain alert"))
	if got := f.Entries(); got[0].Message != "plain alert" {
		t.Fatalf("plain payload dropped: %v", got)
	}

	f.dispatch(TopicSystemStats, []byte(`{"totalUsers":12,"totalDoctors":3}`))
	stats := f.LiveStats()
	if stats == nil || stats.TotalUsers != 12 || stats.TotalDoctors != 3 {
		t.Fatalf("stats = %+v", stats)
	}
	// Stats updates must not pollute the notification list.
	if got := f.Entries(); len(got) != 2 {
		t.Fatalf("stats message leaked into feed: %v", got)
	}
}

func TestAssignsIDWhenMissing(t *testing.T) {
	f := New(nil)
	f.add(models.Notification{Message: "x"})
	if f.Entries()[0].ID == "" {
		t.Error("notification should get a generated id")
	}
}

func TestIsConnectedDefaultsFalse(t *testing.T) {
	if New(nil).IsConnected() {
		t.Error("feed must report disconnected before Run")
	}
}
