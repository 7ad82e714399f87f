package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"TeleAdmin/models"
	"TeleAdmin/notify"
	"TeleAdmin/table"
	"TeleAdmin/utils"
)

// Fetch strategies of the payments view. A date range switches to the
// range endpoint and suppresses pagination; without one the page-based
// endpoint is used and pagination is server-driven.
const (
	PaymentModePaged = "paged"
	PaymentModeRange = "range"
)

// DefaultPaymentPageSize matches the upstream page endpoint default.
const DefaultPaymentPageSize = 10

// PaymentFilters is the filter-control state of the payments view. It is
// mirrored into a URL query string so filtered views stay shareable.
type PaymentFilters struct {
	Search    string `json:"search,omitempty"`
	Status    string `json:"status,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Page      int    `json:"page"`
	Size      int    `json:"size"`
}

// PaymentView is the rendered payments tab.
type PaymentView struct {
	Table   table.ViewModel `json:"table"`
	Summary Summary         `json:"summary"`
	Filters PaymentFilters  `json:"filters"`
	Mode    string          `json:"mode"`
	// Query is the URL query string mirroring the active filters.
	Query string `json:"query,omitempty"`
}

// PaymentService is the payments entity view module.
type PaymentService struct {
	repo   PaymentSource
	toasts *notify.Service

	mu        sync.Mutex
	tbl       *table.Table[models.Payment]
	filters   PaymentFilters
	mode      string
	dateRange *utils.DateRange
	page      *models.PaymentPage // server pagination meta, paged mode only
	total     int
	search    *table.Debouncer
}

func NewPaymentService(repo PaymentSource, toasts *notify.Service) *PaymentService {
	columns := []table.Column[models.Payment]{
		{Key: "transactionId", Title: "Transaction", Kind: table.KindString, Value: func(p models.Payment) interface{} { return paymentRef(p) }},
		{Key: "patientName", Title: "Patient", Kind: table.KindString, Value: func(p models.Payment) interface{} { return p.PatientName }},
		{Key: "doctorName", Title: "Doctor", Kind: table.KindString, Value: func(p models.Payment) interface{} { return p.DoctorName }},
		{Key: "amount", Title: "Amount", Kind: table.KindNumber, Value: func(p models.Payment) interface{} { return p.Amount }},
		{Key: "status", Title: "Status", Kind: table.KindString, Value: func(p models.Payment) interface{} { return models.NormalizePaymentStatus(p.Status) }},
		{Key: "createdAt", Title: "Created", Kind: table.KindDate, Value: func(p models.Payment) interface{} { return p.CreatedAt }},
	}
	refund := table.Action[models.Payment]{
		Icon:  "undo",
		Label: "Refund",
		Handler: func(p models.Payment) {
			toasts.ShowModal(
				"Refund payment",
				fmt.Sprintf("Refund %s (%.2f)? A reason is required and the reversal cannot be undone.", paymentRef(p), p.Amount),
				"refund",
			)
		},
	}
	return &PaymentService{
		repo:   repo,
		toasts: toasts,
		tbl:    table.New(columns, refund),
		mode:   PaymentModePaged,
		search: table.NewDebouncer(table.SearchDebounce),
		filters: PaymentFilters{
			Size: DefaultPaymentPageSize,
		},
	}
}

// Load fetches the first page with no filters.
func (s *PaymentService) Load(ctx context.Context) error {
	return s.Apply(ctx, PaymentFilters{Size: DefaultPaymentPageSize})
}

// Apply validates the filter state and runs the matching fetch strategy.
// An invalid date range blocks before any request is sent.
func (s *PaymentService) Apply(ctx context.Context, f PaymentFilters) error {
	dateRange, err := utils.ParseDateRange(f.StartDate, f.EndDate)
	if err != nil {
		s.toasts.Push(notify.KindError, "Invalid date range: "+err.Error())
		return err
	}
	if f.Size <= 0 {
		f.Size = DefaultPaymentPageSize
	}
	f.Status = models.NormalizePaymentStatus(f.Status)

	if dateRange != nil {
		return s.applyRange(ctx, f, dateRange)
	}
	return s.applyPaged(ctx, f)
}

// applyRange fetches the full matching set and filters status client-side.
func (s *PaymentService) applyRange(ctx context.Context, f PaymentFilters, dateRange *utils.DateRange) error {
	rows, err := s.repo.ListByDateRange(ctx, dateRange.Start, dateRange.End)
	if err != nil {
		s.toasts.Push(notify.KindError, "Failed to load payments: "+err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = PaymentModeRange
	s.dateRange = dateRange
	s.page = nil
	s.filters = f
	s.total = len(rows)
	s.tbl.SetData(rows)
	// The range endpoint returns everything at once; show it all.
	if len(rows) > 0 {
		s.tbl.SetPageSize(len(rows))
	}
	s.applyLocked()
	return nil
}

// applyPaged fetches one server page. The status filter travels to the
// server as a query parameter so counts stay correct across pages.
func (s *PaymentService) applyPaged(ctx context.Context, f PaymentFilters) error {
	page, err := s.repo.ListPage(ctx, f.Page, f.Size, f.Status)
	if err != nil {
		s.toasts.Push(notify.KindError, "Failed to load payments: "+err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = PaymentModePaged
	s.dateRange = nil
	s.page = page
	s.filters = f
	s.total = int(page.TotalElements)
	s.tbl.SetData(page.Content)
	s.tbl.SetPageSize(maxInt(len(page.Content), 1))
	s.applyLocked()
	return nil
}

func (s *PaymentService) applyLocked() {
	s.tbl.Search(s.filters.Search)
	status := s.filters.Status
	if s.mode == PaymentModeRange && status != "" {
		s.tbl.SetFilters(func(p models.Payment) bool {
			return models.NormalizePaymentStatus(p.Status) == status
		})
	} else {
		s.tbl.SetFilters()
	}
}

// SearchInput feeds a keystroke-frequency search term. Input is coalesced
// for the debounce window so only the settled term triggers a filter pass
// over the loaded snapshot; no fetch is issued.
func (s *PaymentService) SearchInput(term string) {
	s.search.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filters.Search = term
		s.applyLocked()
	})
}

// QuickFilter applies a named preset: a canned date window or a status
// shortcut, then re-runs the fetch.
func (s *PaymentService) QuickFilter(ctx context.Context, name string) error {
	s.mu.Lock()
	f := s.filters
	s.mu.Unlock()

	now := time.Now()
	today := now.Format(utils.DateLayout)
	switch strings.ToLower(name) {
	case "today":
		f.StartDate, f.EndDate = today, today
	case "week":
		f.StartDate, f.EndDate = now.AddDate(0, 0, -7).Format(utils.DateLayout), today
	case "month":
		f.StartDate, f.EndDate = now.AddDate(0, -1, 0).Format(utils.DateLayout), today
	case "success", "pending", "failed", "refunded", "cancelled":
		f.Status = strings.ToUpper(name)
		f.Page = 0
	default:
		return fmt.Errorf("unknown quick filter %q", name)
	}
	return s.Apply(ctx, f)
}

// View renders the tab. In paged mode the pagination block reflects the
// server's page meta; in range mode it is absent entirely.
func (s *PaymentService) View() PaymentView {
	s.mu.Lock()
	defer s.mu.Unlock()

	vm := s.tbl.Render()
	filtered := len(s.tbl.Filtered())

	switch s.mode {
	case PaymentModeRange:
		vm.Pagination = nil
	case PaymentModePaged:
		if s.page != nil && vm.Pagination != nil {
			vm.Pagination = &table.Pagination{
				Page:       s.page.Number,
				PageSize:   s.page.Size,
				TotalRows:  s.page.TotalElements,
				TotalPages: s.page.TotalPages,
				HasNext:    !s.page.Last,
				HasPrev:    !s.page.First,
			}
		}
	}

	return PaymentView{
		Table:   vm,
		Summary: newSummary(filtered, s.total),
		Filters: s.filters,
		Mode:    s.mode,
		Query:   s.queryLocked(),
	}
}

// queryLocked builds the URL query string mirror of the active filters.
func (s *PaymentService) queryLocked() string {
	q := url.Values{}
	if s.filters.StartDate != "" {
		q.Set("startDate", s.filters.StartDate)
	}
	if s.filters.EndDate != "" {
		q.Set("endDate", s.filters.EndDate)
	}
	if s.filters.Status != "" {
		q.Set("status", s.filters.Status)
	}
	return q.Encode()
}

// Reset clears the filter state and query mirror. The tab controller runs
// this when the administrator leaves the payments tab.
func (s *PaymentService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = PaymentFilters{Size: DefaultPaymentPageSize}
	s.mode = PaymentModePaged
	s.dateRange = nil
	s.page = nil
	s.total = 0
	s.tbl.SetData(nil)
	s.applyLocked()
}

// Export streams the export file for the active filters and returns the
// generated filename.
func (s *PaymentService) Export(ctx context.Context, format string) (io.ReadCloser, string, string, error) {
	s.mu.Lock()
	dateRange := s.dateRange
	status := s.filters.Status
	s.mu.Unlock()

	var start, end *time.Time
	if dateRange != nil {
		start, end = &dateRange.Start, &dateRange.End
	}
	body, contentType, err := s.repo.Export(ctx, format, start, end)
	if err != nil {
		s.toasts.Push(notify.KindError, "Export failed: "+err.Error())
		return nil, "", "", err
	}
	return body, contentType, utils.ExportFilename(format, dateRange, status), nil
}

// Refund reverses a payment after explicit confirmation, then reloads the
// current view.
func (s *PaymentService) Refund(ctx context.Context, paymentID int64, reason string, confirmed bool) error {
	if !confirmed {
		s.tbl.Invoke("Refund", func(p models.Payment) bool { return p.ID == paymentID })
		return ErrConfirmationRequired
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("refund reason is required")
	}
	if err := s.repo.Refund(ctx, paymentID, reason); err != nil {
		s.toasts.Push(notify.KindError, "Refund failed: "+err.Error())
		return err
	}
	s.toasts.Push(notify.KindSuccess, "Payment refunded")

	s.mu.Lock()
	f := s.filters
	s.mu.Unlock()
	return s.Apply(ctx, f)
}

func paymentRef(p models.Payment) string {
	if p.TransactionID != "" {
		return p.TransactionID
	}
	return fmt.Sprintf("#%d", p.ID)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
