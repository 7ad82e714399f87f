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

// Experience buckets offered by the doctors view filter.
const (
	ExperienceJunior  = "0-2"
	ExperienceMid     = "3-5"
	ExperienceSenior  = "6-10"
	ExperienceVeteran = "10+"
)

// DoctorFilters is the filter-control state of the doctors view.
type DoctorFilters struct {
	Search     string `json:"search,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
	Status     string `json:"status,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// DoctorView is the rendered doctors tab.
type DoctorView struct {
	Table   table.ViewModel `json:"table"`
	Summary Summary         `json:"summary"`
	Filters DoctorFilters   `json:"filters"`
}

// DoctorService is the doctors entity view module.
type DoctorService struct {
	repo   DoctorSource
	toasts *notify.Service

	mu      sync.Mutex
	tbl     *table.Table[models.Doctor]
	filters DoctorFilters
	total   int
	search  *table.Debouncer
}

func NewDoctorService(repo DoctorSource, toasts *notify.Service) *DoctorService {
	columns := []table.Column[models.Doctor]{
		{Key: "fullName", Title: "Full name", Kind: table.KindString, Value: func(d models.Doctor) interface{} { return d.FullName }},
		{Key: "specialty", Title: "Specialty", Kind: table.KindString, Value: func(d models.Doctor) interface{} { return d.Specialty }},
		{Key: "experience", Title: "Experience", Kind: table.KindNumber, Value: func(d models.Doctor) interface{} { return d.Experience }},
		{Key: "phone", Title: "Phone", Kind: table.KindString, Value: func(d models.Doctor) interface{} { return d.Phone }},
		{Key: "email", Title: "Email", Kind: table.KindString, Value: func(d models.Doctor) interface{} { return orNA(d.Email) }},
		{Key: "status", Title: "Status", Kind: table.KindString, Value: func(d models.Doctor) interface{} { return d.Status }},
	}
	remove := table.Action[models.Doctor]{
		Icon:  "trash",
		Label: "Delete",
		Handler: func(d models.Doctor) {
			toasts.ShowModal(
				"Delete doctor",
				fmt.Sprintf("Delete doctor %q? This cannot be undone.", d.FullName),
				"delete",
			)
		},
	}
	return &DoctorService{
		repo:   repo,
		toasts: toasts,
		tbl:    table.New(columns, remove),
		search: table.NewDebouncer(table.SearchDebounce),
	}
}

// Load replaces the snapshot from the upstream.
func (s *DoctorService) Load(ctx context.Context) error {
	doctors, err := s.repo.GetAll(ctx)
	if err != nil && doctors == nil {
		return err
	}
	if err != nil {
		s.toasts.Push(notify.KindError, "Failed to load doctors; showing cached sample data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = len(doctors)
	s.tbl.SetData(doctors)
	s.applyLocked()
	return nil
}

// ApplyFilters updates the filter-control state and re-renders.
func (s *DoctorService) ApplyFilters(f DoctorFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.applyLocked()
}

// QuickFilter applies a named preset: a specialty shortcut or an
// experience bucket in one action.
func (s *DoctorService) QuickFilter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name := strings.ToLower(name); name {
	case "cardiology", "dermatology", "pediatrics", "neurology":
		s.filters.Specialty = strings.ToUpper(name[:1]) + name[1:]
	case "experienced":
		s.filters.Experience = ExperienceVeteran
	default:
		return
	}
	s.applyLocked()
}

func (s *DoctorService) applyLocked() {
	s.tbl.Search(s.filters.Search)
	specialty := s.filters.Specialty
	status := strings.ToUpper(s.filters.Status)
	bucket := s.filters.Experience
	s.tbl.SetFilters(
		matchIfSet(specialty, func(d models.Doctor) string { return d.Specialty }),
		matchIfSet(status, func(d models.Doctor) string { return d.Status }),
		experiencePredicate(bucket),
	)
}

// experiencePredicate maps a bucket label to a years predicate. Unknown or
// empty labels are no-ops.
func experiencePredicate(bucket string) func(models.Doctor) bool {
	var lo, hi int
	switch bucket {
	case ExperienceJunior:
		lo, hi = 0, 2
	case ExperienceMid:
		lo, hi = 3, 5
	case ExperienceSenior:
		lo, hi = 6, 10
	case ExperienceVeteran:
		lo, hi = 11, 1<<31-1
	default:
		return nil
	}
	return func(d models.Doctor) bool {
		return d.Experience >= lo && d.Experience <= hi
	}
}

// SearchInput feeds a keystroke-frequency search term. Input is coalesced
// for the debounce window so only the settled term triggers a filter pass.
func (s *DoctorService) SearchInput(term string) {
	s.search.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filters.Search = term
		s.applyLocked()
	})
}

// Sort sorts by a column key with toggle semantics.
func (s *DoctorService) Sort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl.SortBy(key)
}

// SetPage selects a page of the filtered view.
func (s *DoctorService) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl.SetPage(page)
}

// View renders the tab with summary counts by specialty and status.
func (s *DoctorService) View() DoctorView {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.tbl.Filtered()
	summary := newSummary(len(filtered), s.total)
	summary.Counts = map[string]int{}
	for _, d := range filtered {
		summary.Counts["specialty:"+d.Specialty]++
		summary.Counts["status:"+d.Status]++
	}
	return DoctorView{
		Table:   s.tbl.Render(),
		Summary: summary,
		Filters: s.filters,
	}
}

// Create registers a doctor account after validating the form.
func (s *DoctorService) Create(ctx context.Context, req models.CreateDoctorRequest) error {
	if err := utils.ValidateCreateDoctorRequest(req); err != nil {
		return errors.Wrap(err, "invalid doctor form")
	}
	if err := s.repo.Create(ctx, req); err != nil {
		s.toasts.Push(notify.KindError, "Failed to create doctor: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "Doctor created")
	return s.Load(ctx)
}

// Delete removes a doctor account after explicit confirmation.
func (s *DoctorService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		s.tbl.Invoke("Delete", func(d models.Doctor) bool { return d.ID == id })
		return ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.toasts.Push(notify.KindError, "Failed to delete doctor: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "Doctor deleted")
	return s.Load(ctx)
}
