package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"TeleAdmin/models"
	"TeleAdmin/notify"
)

type fakeUserSource struct {
	users   []models.User
	err     error
	deleted []int64
	created int
}

func (f *fakeUserSource) GetAll(ctx context.Context) ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeUserSource) Register(ctx context.Context, req interface{}) error {
	f.created++
	return f.err
}

func (f *fakeUserSource) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserSource) Profile(ctx context.Context) (*models.User, error) {
	return &models.User{Role: models.RoleAdmin}, f.err
}

func testUsers() []models.User {
	return []models.User{
		{ID: 1, Username: "admin", Email: "a@x", Role: "ADMIN", Status: "ACTIVE"},
		{ID: 2, Username: "doc1", Email: "d1@x", Role: "DOCTOR", Status: "ACTIVE"},
		{ID: 3, Username: "doc2", Email: "d2@x", Role: "DOCTOR", Status: "INACTIVE"},
		{ID: 4, Username: "pat1", Email: "p1@x", Role: "PATIENT", Status: "PENDING"},
		{ID: 5, Username: "pat2", Email: "p2@x", Role: "PATIENT", Status: "ACTIVE"},
	}
}

func TestUserFiltersCombineWithAND(t *testing.T) {
	s := NewUserService(&fakeUserSource{users: testUsers()}, notify.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	s.ApplyFilters(UserFilters{Role: "doctor", Status: "active"})
	view := s.View()
	if view.Summary.Filtered != 1 {
		t.Fatalf("filtered = %d, want 1 (role AND status)", view.Summary.Filtered)
	}
	if view.Summary.Total != 5 {
		t.Errorf("total = %d, want 5", view.Summary.Total)
	}

	// Empty filter values are no-ops: everything comes back.
	s.ApplyFilters(UserFilters{})
	if got := s.View().Summary.Filtered; got != 5 {
		t.Fatalf("unset filters excluded rows: %d", got)
	}
}

func TestUserSummaryCounts(t *testing.T) {
	s := NewUserService(&fakeUserSource{users: testUsers()}, notify.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	counts := s.View().Summary.Counts
	if counts["role:DOCTOR"] != 2 || counts["status:ACTIVE"] != 3 {
		t.Errorf("counts = %v", counts)
	}
}

func TestUserSearchByAnyColumn(t *testing.T) {
	s := NewUserService(&fakeUserSource{users: testUsers()}, notify.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.ApplyFilters(UserFilters{Search: "PAT"})
	if got := s.View().Summary.Filtered; got != 2 {
		t.Fatalf("search matched %d rows, want 2", got)
	}
}

func TestUserSearchInputCoalesces(t *testing.T) {
	s := NewUserService(&fakeUserSource{users: testUsers()}, notify.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Keystroke-frequency input: only the settled term should apply.
	s.SearchInput("p")
	s.SearchInput("pa")
	s.SearchInput("pat1")

	deadline := time.Now().Add(2 * time.Second)
	for {
		view := s.View()
		if view.Summary.Filtered == 1 {
			if view.Filters.Search != "pat1" {
				t.Fatalf("applied term = %q, want the last input", view.Filters.Search)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("debounced search never applied, filtered = %d", view.Summary.Filtered)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestUserDeleteRequiresConfirmation(t *testing.T) {
	src := &fakeUserSource{users: testUsers()}
	s := NewUserService(src, notify.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(context.Background(), 2, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", err)
	}
	if len(src.deleted) != 0 {
		t.Fatal("unconfirmed delete must not reach the upstream")
	}

	if err := s.Delete(context.Background(), 2, true); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if len(src.deleted) != 1 || src.deleted[0] != 2 {
		t.Fatalf("deleted = %v", src.deleted)
	}
}

func TestUserLoadFallbackSurfacesToast(t *testing.T) {
	src := &fakeUserSource{users: testUsers(), err: errors.New("backend down")}
	toasts := notify.New()
	s := NewUserService(src, toasts)

	// Fallback data plus error mirrors the repository contract.
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load with fallback data should not fail: %v", err)
	}
	if got := s.View().Summary.Total; got != 5 {
		t.Errorf("fallback data not rendered, total = %d", got)
	}
	visible := toasts.Visible()
	if len(visible) != 1 || visible[0].Kind != notify.KindError {
		t.Fatalf("expected one error toast, got %v", visible)
	}
}

func TestUserCreateValidatesBeforeRequest(t *testing.T) {
	src := &fakeUserSource{users: testUsers()}
	s := NewUserService(src, notify.New())
	err := s.Create(context.Background(), models.RegisterRequest{Username: "x"})
	if err == nil {
		t.Fatal("invalid form accepted")
	}
	if src.created != 0 {
		t.Fatal("invalid form must not reach the upstream")
	}
}
