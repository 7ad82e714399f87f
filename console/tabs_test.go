package console

import (
	"context"
	"testing"
)

type fakeLoader struct {
	loads int
	err   error
}

func (f *fakeLoader) Load(ctx context.Context) error {
	f.loads++
	return f.err
}

func TestInitialStateIsDashboard(t *testing.T) {
	c := NewController()
	if c.Current() != TabDashboard {
		t.Fatalf("initial tab = %q", c.Current())
	}
	if c.Title() != "Dashboard" {
		t.Fatalf("initial title = %q", c.Title())
	}
}

func TestActivateDispatchesLoad(t *testing.T) {
	c := NewController()
	users := &fakeLoader{}
	c.Register(TabUsers, users)

	if err := c.Activate(context.Background(), TabUsers); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if c.Current() != TabUsers || c.Title() != "User Management" {
		t.Errorf("current = %q title = %q", c.Current(), c.Title())
	}
	if users.loads != 1 {
		t.Errorf("loads = %d, want 1", users.loads)
	}

	// Re-activating the same tab reloads it.
	if err := c.Activate(context.Background(), TabUsers); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if users.loads != 2 {
		t.Errorf("loads = %d, want 2", users.loads)
	}
}

func TestActivateRejectsUnknownTab(t *testing.T) {
	c := NewController()
	if err := c.Activate(context.Background(), Tab("billing")); err == nil {
		t.Fatal("expected error for unknown tab")
	}
	if c.Current() != TabDashboard {
		t.Error("failed navigation must not change the active tab")
	}
}

func TestLeaveHookRunsOnlyWhenLeaving(t *testing.T) {
	c := NewController()
	c.Register(TabPayments, &fakeLoader{})
	c.Register(TabUsers, &fakeLoader{})

	cleanups := 0
	c.OnLeave(TabPayments, func() { cleanups++ })

	ctx := context.Background()
	if err := c.Activate(ctx, TabPayments); err != nil {
		t.Fatal(err)
	}
	// Reload of the same tab is not a leave.
	if err := c.Activate(ctx, TabPayments); err != nil {
		t.Fatal(err)
	}
	if cleanups != 0 {
		t.Fatalf("cleanup ran %d times while staying on payments", cleanups)
	}

	if err := c.Activate(ctx, TabUsers); err != nil {
		t.Fatal(err)
	}
	if cleanups != 1 {
		t.Fatalf("cleanup ran %d times after leaving payments, want 1", cleanups)
	}
}

func TestResetReturnsToDashboard(t *testing.T) {
	c := NewController()
	c.Register(TabDoctors, &fakeLoader{})
	if err := c.Activate(context.Background(), TabDoctors); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.Current() != TabDashboard {
		t.Errorf("after Reset current = %q", c.Current())
	}
}
