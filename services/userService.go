package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"TeleAdmin/models"
	"TeleAdmin/notify"
	"TeleAdmin/table"
	"TeleAdmin/utils"

	"github.com/pkg/errors"
)

// UserFilters is the filter-control state of the users view.
type UserFilters struct {
	Search string `json:"search,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// UserView is the rendered users tab.
type UserView struct {
	Table   table.ViewModel `json:"table"`
	Summary Summary         `json:"summary"`
	Filters UserFilters     `json:"filters"`
}

// UserService is the users entity view module: one snapshot, its filter
// state and the CRUD actions.
type UserService struct {
	repo   UserSource
	toasts *notify.Service

	mu      sync.Mutex
	tbl     *table.Table[models.User]
	filters UserFilters
	total   int
	search  *table.Debouncer
}

func NewUserService(repo UserSource, toasts *notify.Service) *UserService {
	columns := []table.Column[models.User]{
		{Key: "username", Title: "Username", Kind: table.KindString, Value: func(u models.User) interface{} { return u.Username }},
		{Key: "fullName", Title: "Full name", Kind: table.KindString, Value: func(u models.User) interface{} { return orNA(u.FullName) }},
		{Key: "email", Title: "Email", Kind: table.KindString, Value: func(u models.User) interface{} { return u.Email }},
		{Key: "role", Title: "Role", Kind: table.KindString, Value: func(u models.User) interface{} { return u.Role }},
		{Key: "status", Title: "Status", Kind: table.KindString, Value: func(u models.User) interface{} { return u.Status }},
		{Key: "createdAt", Title: "Created", Kind: table.KindDate, Value: func(u models.User) interface{} { return u.CreatedAt }},
	}
	remove := table.Action[models.User]{
		Icon:  "trash",
		Label: "Delete",
		Handler: func(u models.User) {
			toasts.ShowModal(
				"Delete user",
				fmt.Sprintf("Delete account %q? This cannot be undone.", u.Username),
				"delete",
			)
		},
	}
	return &UserService{
		repo:   repo,
		toasts: toasts,
		tbl:    table.New(columns, remove),
		search: table.NewDebouncer(table.SearchDebounce),
	}
}

// Load replaces the snapshot from the upstream. A failed read keeps the
// fallback dataset on screen and surfaces the error as a toast.
func (s *UserService) Load(ctx context.Context) error {
	users, err := s.repo.GetAll(ctx)
	if err != nil && users == nil {
		return err // auth failure, already handled by the client
	}
	if err != nil {
		s.toasts.Push(notify.KindError, "Failed to load users; showing cached sample data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = len(users)
	s.tbl.SetData(users)
	s.applyLocked()
	return nil
}

// ApplyFilters updates the filter-control state and re-renders.
func (s *UserService) ApplyFilters(f UserFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.applyLocked()
}

func (s *UserService) applyLocked() {
	s.tbl.Search(s.filters.Search)
	role := strings.ToUpper(s.filters.Role)
	status := strings.ToUpper(s.filters.Status)
	s.tbl.SetFilters(
		matchIfSet(role, func(u models.User) string { return u.Role }),
		matchIfSet(status, func(u models.User) string { return u.Status }),
	)
}

// SearchInput feeds a keystroke-frequency search term. Input is coalesced
// for the debounce window so only the settled term triggers a filter pass.
func (s *UserService) SearchInput(term string) {
	s.search.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filters.Search = term
		s.applyLocked()
	})
}

// Sort sorts by a column key with toggle semantics.
func (s *UserService) Sort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl.SortBy(key)
}

// SetPage selects a page of the filtered view.
func (s *UserService) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl.SetPage(page)
}

// View renders the tab: table plus summary counts by role and status.
func (s *UserService) View() UserView {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.tbl.Filtered()
	summary := newSummary(len(filtered), s.total)
	summary.Counts = map[string]int{}
	for _, u := range filtered {
		summary.Counts["role:"+u.Role]++
		summary.Counts["status:"+u.Status]++
	}
	return UserView{
		Table:   s.tbl.Render(),
		Summary: summary,
		Filters: s.filters,
	}
}

// Create registers an account after validating the form, then reloads.
func (s *UserService) Create(ctx context.Context, req models.RegisterRequest) error {
	if err := utils.ValidateRegisterRequest(req); err != nil {
		return errors.Wrap(err, "invalid user form")
	}
	if err := s.repo.Register(ctx, req); err != nil {
		s.toasts.Push(notify.KindError, "Failed to create user: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "User created")
	return s.Load(ctx)
}

// Delete removes an account. The confirmation flag is the interactive
// confirm step; without it no request is sent. No optimistic update: the
// snapshot only changes after the server confirms.
func (s *UserService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		s.tbl.Invoke("Delete", func(u models.User) bool { return u.ID == id })
		return ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.toasts.Push(notify.KindError, "Failed to delete user: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "User deleted")
	return s.Load(ctx)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// matchIfSet builds a case-insensitive equality predicate, or nil when the
// filter value is empty so unset controls never exclude rows.
func matchIfSet[T any](want string, get func(T) string) func(T) bool {
	if want == "" {
		return nil
	}
	return func(row T) bool {
		return strings.EqualFold(get(row), want)
	}
}
