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

// Age buckets offered by the patients view filter, computed from the
// derived age.
const (
	AgeMinor  = "0-18"
	AgeYoung  = "19-35"
	AgeMiddle = "36-60"
	AgeSenior = "60+"
)

// PatientFilters is the filter-control state of the patients view.
type PatientFilters struct {
	Search   string `json:"search,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Status   string `json:"status,omitempty"`
	AgeRange string `json:"ageRange,omitempty"`
}

// PatientView is the rendered patients tab.
type PatientView struct {
	Table   table.ViewModel `json:"table"`
	Summary Summary         `json:"summary"`
	Filters PatientFilters  `json:"filters"`
}

// PatientService is the patients entity view module.
type PatientService struct {
	repo   PatientSource
	toasts *notify.Service

	mu      sync.Mutex
	tbl     *table.Table[models.Patient]
	filters PatientFilters
	total   int
	search  *table.Debouncer
}

func NewPatientService(repo PatientSource, toasts *notify.Service) *PatientService {
	columns := []table.Column[models.Patient]{
		{Key: "fullName", Title: "Full name", Kind: table.KindString, Value: func(p models.Patient) interface{} { return p.FullName }},
		{Key: "dateOfBirth", Title: "Date of birth", Kind: table.KindDate, Value: func(p models.Patient) interface{} { return p.DateOfBirth }},
		{Key: "age", Title: "Age", Kind: table.KindNumber, Value: func(p models.Patient) interface{} { return p.Age() }},
		{Key: "gender", Title: "Gender", Kind: table.KindString, Value: func(p models.Patient) interface{} { return p.Gender }},
		{Key: "phone", Title: "Phone", Kind: table.KindString, Value: func(p models.Patient) interface{} { return p.Phone }},
		{Key: "address", Title: "Address", Kind: table.KindString, Value: func(p models.Patient) interface{} { return orNA(p.Address) }},
		{Key: "status", Title: "Status", Kind: table.KindString, Value: func(p models.Patient) interface{} { return p.Status }},
	}
	remove := table.Action[models.Patient]{
		Icon:  "trash",
		Label: "Delete",
		Handler: func(p models.Patient) {
			toasts.ShowModal(
				"Delete patient",
				fmt.Sprintf("Delete patient %q? This cannot be undone.", p.FullName),
				"delete",
			)
		},
	}
	return &PatientService{
		repo:   repo,
		toasts: toasts,
		tbl:    table.New(columns, remove),
		search: table.NewDebouncer(table.SearchDebounce),
	}
}

// Load replaces the snapshot from the upstream.
func (s *PatientService) Load(ctx context.Context) error {
	patients, err := s.repo.GetAll(ctx)
	if err != nil && patients == nil {
		return err
	}
	if err != nil {
		s.toasts.Push(notify.KindError, "Failed to load patients; showing cached sample data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = len(patients)
	s.tbl.SetData(patients)
	s.applyLocked()
	return nil
}

// ApplyFilters updates the filter-control state and re-renders.
func (s *PatientService) ApplyFilters(f PatientFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.applyLocked()
}

func (s *PatientService) applyLocked() {
	s.tbl.Search(s.filters.Search)
	gender := strings.ToUpper(s.filters.Gender)
	status := strings.ToUpper(s.filters.Status)
	s.tbl.SetFilters(
		matchIfSet(gender, func(p models.Patient) string { return p.Gender }),
		matchIfSet(status, func(p models.Patient) string { return p.Status }),
		agePredicate(s.filters.AgeRange),
	)
}

// agePredicate maps an age bucket label to a predicate over derived age.
func agePredicate(bucket string) func(models.Patient) bool {
	var lo, hi int
	switch bucket {
	case AgeMinor:
		lo, hi = 0, 18
	case AgeYoung:
		lo, hi = 19, 35
	case AgeMiddle:
		lo, hi = 36, 60
	case AgeSenior:
		lo, hi = 61, 1<<31-1
	default:
		return nil
	}
	return func(p models.Patient) bool {
		age := p.Age()
		return age >= lo && age <= hi
	}
}

// SearchInput feeds a keystroke-frequency search term. Input is coalesced
// for the debounce window so only the settled term triggers a filter pass.
func (s *PatientService) SearchInput(term string) {
	s.search.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filters.Search = term
		s.applyLocked()
	})
}

// Sort sorts by a column key with toggle semantics.
func (s *PatientService) Sort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl.SortBy(key)
}

// SetPage selects a page of the filtered view.
func (s *PatientService) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl.SetPage(page)
}

// View renders the tab with summary counts by gender and status.
func (s *PatientService) View() PatientView {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.tbl.Filtered()
	summary := newSummary(len(filtered), s.total)
	summary.Counts = map[string]int{}
	for _, p := range filtered {
		summary.Counts["gender:"+p.Gender]++
		summary.Counts["status:"+p.Status]++
	}
	return PatientView{
		Table:   s.tbl.Render(),
		Summary: summary,
		Filters: s.filters,
	}
}

// Create adds a patient after validating the form.
func (s *PatientService) Create(ctx context.Context, req models.CreatePatientRequest) error {
	if err := utils.ValidateCreatePatientRequest(req); err != nil {
		return errors.Wrap(err, "invalid patient form")
	}
	if err := s.repo.Create(ctx, req); err != nil {
		s.toasts.Push(notify.KindError, "Failed to create patient: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "Patient created")
	return s.Load(ctx)
}

// Delete removes a patient after explicit confirmation.
func (s *PatientService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		s.tbl.Invoke("Delete", func(p models.Patient) bool { return p.ID == id })
		return ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.toasts.Push(notify.KindError, "Failed to delete patient: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "Patient deleted")
	return s.Load(ctx)
}
