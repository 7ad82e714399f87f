package notify

import (
	"fmt"
	"testing"
	"time"
)

func newFrozen(at time.Time) (*Service, *time.Time) {
	s := New()
	current := at
	s.now = func() time.Time { return current }
	return s, &current
}

func TestPushEnforcesVisibleCap(t *testing.T) {
	s, _ := newFrozen(time.Now())
	for i := 0; i < 8; i++ {
		s.Push(KindInfo, fmt.Sprintf("toast %d", i))
	}
	visible := s.Visible()
	if len(visible) != MaxVisible {
		t.Fatalf("visible = %d, want %d", len(visible), MaxVisible)
	}
	// Oldest were evicted; the newest five remain in order.
	if visible[0].Message != "toast 3" || visible[4].Message != "toast 7" {
		t.Errorf("unexpected window: %q .. %q", visible[0].Message, visible[4].Message)
	}
}

func TestToastsExpire(t *testing.T) {
	start := time.Now()
	s, current := newFrozen(start)
	s.Push(KindSuccess, "done")
	*current = start.Add(ToastLifetime + time.Second)
	if got := s.Visible(); len(got) != 0 {
		t.Fatalf("expired toast still visible: %v", got)
	}
}

func TestDismiss(t *testing.T) {
	s, _ := newFrozen(time.Now())
	toast := s.Push(KindError, "boom")
	if !s.Dismiss(toast.ID) {
		t.Fatal("Dismiss should find the toast")
	}
	if s.Dismiss(toast.ID) {
		t.Fatal("second Dismiss should miss")
	}
	if len(s.Visible()) != 0 {
		t.Fatal("toast should be gone")
	}
}

func TestModalReplacesWithoutStacking(t *testing.T) {
	s := New()
	if s.Modal() != nil {
		t.Fatal("no modal open initially")
	}
	s.ShowModal("Add user", "<form/>", "")
	s.ShowModal("Edit doctor", "<form/>", "save")
	m := s.Modal()
	if m == nil || m.Title != "Edit doctor" {
		t.Fatalf("modal = %+v, want replaced content", m)
	}
	s.CloseModal()
	if s.Modal() != nil {
		t.Fatal("modal should be closed")
	}
}
