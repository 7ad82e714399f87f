package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"TeleAdmin/models"
	"TeleAdmin/notify"
)

type fakePaymentSource struct {
	rangeRows []models.Payment
	page      *models.PaymentPage

	rangeCalls  int
	pagedCalls  int
	lastStatus  string
	lastPage    int
	lastSize    int
	lastStart   time.Time
	lastEnd     time.Time
	refunded    []int64
	exportCalls int
	err         error
}

func (f *fakePaymentSource) ListPage(ctx context.Context, page, size int, status string) (*models.PaymentPage, error) {
	f.pagedCalls++
	f.lastPage, f.lastSize, f.lastStatus = page, size, status
	return f.page, f.err
}

func (f *fakePaymentSource) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Payment, error) {
	f.rangeCalls++
	f.lastStart, f.lastEnd = start, end
	return f.rangeRows, f.err
}

func (f *fakePaymentSource) Statistics(ctx context.Context) (*models.PaymentStats, error) {
	return &models.PaymentStats{}, f.err
}

func (f *fakePaymentSource) Export(ctx context.Context, format string, start, end *time.Time) (io.ReadCloser, string, error) {
	f.exportCalls++
	if f.err != nil {
		return nil, "", f.err
	}
	return io.NopCloser(strings.NewReader("id,amount\n")), "text/csv", nil
}

func (f *fakePaymentSource) Refund(ctx context.Context, paymentID int64, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.refunded = append(f.refunded, paymentID)
	return nil
}

// rangePayments builds 23 rows of which exactly 10 end up SUCCESS after
// normalization (7 SUCCESS plus 3 legacy COMPLETED).
func rangePayments() []models.Payment {
	rows := make([]models.Payment, 0, 23)
	for i := 1; i <= 7; i++ {
		rows = append(rows, models.Payment{ID: int64(i), Amount: float64(i) * 100, Status: "SUCCESS"})
	}
	for i := 8; i <= 10; i++ {
		rows = append(rows, models.Payment{ID: int64(i), Amount: float64(i) * 100, Status: "COMPLETED"})
	}
	for i := 11; i <= 23; i++ {
		status := "PENDING"
		if i%2 == 0 {
			status = "FAILED"
		}
		rows = append(rows, models.Payment{ID: int64(i), Amount: float64(i) * 100, Status: status})
	}
	for i := range rows {
		rows[i].TransactionID = fmt.Sprintf("TX-%03d", rows[i].ID)
	}
	return rows
}

func TestPaymentRangeModeHidesPagination(t *testing.T) {
	src := &fakePaymentSource{rangeRows: rangePayments()}
	s := NewPaymentService(src, notify.New())

	err := s.Apply(context.Background(), PaymentFilters{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	if err != nil {
		t.Fatal(err)
	}
	if src.rangeCalls != 1 || src.pagedCalls != 0 {
		t.Fatalf("range=%d paged=%d, want the range endpoint only", src.rangeCalls, src.pagedCalls)
	}

	view := s.View()
	if view.Mode != PaymentModeRange {
		t.Errorf("mode = %q", view.Mode)
	}
	if view.Table.Pagination != nil {
		t.Error("range mode must not render pagination controls")
	}
	if len(view.Table.Rows) != 23 {
		t.Errorf("rows = %d, want all 23 at once", len(view.Table.Rows))
	}
}

func TestPaymentQuickFilterSuccessSummary(t *testing.T) {
	src := &fakePaymentSource{rangeRows: rangePayments()}
	s := NewPaymentService(src, notify.New())

	if err := s.Apply(context.Background(), PaymentFilters{StartDate: "2024-01-01", EndDate: "2024-01-31"}); err != nil {
		t.Fatal(err)
	}
	if err := s.QuickFilter(context.Background(), "success"); err != nil {
		t.Fatal(err)
	}

	view := s.View()
	if view.Summary.Filtered != 10 {
		t.Fatalf("filtered = %d, want 10 (7 SUCCESS + 3 COMPLETED)", view.Summary.Filtered)
	}
	if view.Summary.Label != "10 / 23 kết quả" {
		t.Errorf("label = %q", view.Summary.Label)
	}
	if len(view.Table.Rows) != 10 {
		t.Errorf("rendered rows = %d, want 10", len(view.Table.Rows))
	}
}

func TestPaymentPagedModeForwardsStatus(t *testing.T) {
	content := rangePayments()[:10]
	src := &fakePaymentSource{page: &models.PaymentPage{
		Content:       content,
		TotalPages:    6,
		TotalElements: 57,
		Number:        1,
		Size:          10,
		First:         false,
		Last:          false,
	}}
	s := NewPaymentService(src, notify.New())

	err := s.Apply(context.Background(), PaymentFilters{Status: "completed", Page: 1, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if src.pagedCalls != 1 || src.rangeCalls != 0 {
		t.Fatalf("paged=%d range=%d, want the page endpoint only", src.pagedCalls, src.rangeCalls)
	}
	// Legacy COMPLETED is normalized before it reaches the wire.
	if src.lastStatus != "SUCCESS" {
		t.Errorf("status param = %q, want SUCCESS", src.lastStatus)
	}
	if src.lastPage != 1 || src.lastSize != 10 {
		t.Errorf("page/size = %d/%d", src.lastPage, src.lastSize)
	}

	view := s.View()
	p := view.Table.Pagination
	if p == nil {
		t.Fatal("paged mode must render pagination")
	}
	if p.Page != 1 || p.TotalPages != 6 || p.TotalRows != 57 {
		t.Errorf("pagination = %+v", p)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("middle page must have both directions: %+v", p)
	}
	if view.Summary.Total != 57 {
		t.Errorf("total = %d, want the server count", view.Summary.Total)
	}
}

func TestPaymentInvalidRangeBlocksRequest(t *testing.T) {
	src := &fakePaymentSource{rangeRows: rangePayments()}
	toasts := notify.New()
	s := NewPaymentService(src, toasts)

	err := s.Apply(context.Background(), PaymentFilters{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	if err == nil {
		t.Fatal("inverted range accepted")
	}
	if src.rangeCalls != 0 || src.pagedCalls != 0 {
		t.Fatal("invalid range must not trigger any fetch")
	}
	if len(toasts.Visible()) != 1 {
		t.Error("expected an error toast")
	}
}

func TestPaymentQueryMirror(t *testing.T) {
	src := &fakePaymentSource{rangeRows: rangePayments()}
	s := NewPaymentService(src, notify.New())

	err := s.Apply(context.Background(), PaymentFilters{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Status:    "success",
	})
	if err != nil {
		t.Fatal(err)
	}
	got := s.View().Query
	want := "endDate=2024-01-31&startDate=2024-01-01&status=SUCCESS"
	if got != want {
		t.Errorf("query = %q, want %q", got, want)
	}

	s.Reset()
	view := s.View()
	if view.Query != "" {
		t.Errorf("query after reset = %q", view.Query)
	}
	if view.Filters.StartDate != "" || view.Filters.Status != "" {
		t.Errorf("filters after reset = %+v", view.Filters)
	}
	if view.Mode != PaymentModePaged {
		t.Errorf("mode after reset = %q", view.Mode)
	}
}

func TestPaymentExportFilename(t *testing.T) {
	src := &fakePaymentSource{rangeRows: rangePayments()}
	s := NewPaymentService(src, notify.New())

	err := s.Apply(context.Background(), PaymentFilters{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Status:    "success",
	})
	if err != nil {
		t.Fatal(err)
	}

	body, contentType, filename, err := s.Export(context.Background(), "excel")
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()
	if contentType != "text/csv" {
		t.Errorf("contentType = %q", contentType)
	}
	if filename != "payments_2024-01-01_2024-01-31_success.xlsx" {
		t.Errorf("filename = %q", filename)
	}
}

func TestPaymentRefundRequiresConfirmationAndReason(t *testing.T) {
	src := &fakePaymentSource{rangeRows: rangePayments(), page: &models.PaymentPage{Content: rangePayments()[:5], TotalElements: 5, TotalPages: 1, Size: 10, First: true, Last: true}}
	s := NewPaymentService(src, notify.New())

	if err := s.Refund(context.Background(), 3, "duplicate charge", false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", err)
	}
	if err := s.Refund(context.Background(), 3, "   ", true); err == nil {
		t.Fatal("blank reason accepted")
	}
	if len(src.refunded) != 0 {
		t.Fatal("rejected refunds must not reach the upstream")
	}

	if err := s.Refund(context.Background(), 3, "duplicate charge", true); err != nil {
		t.Fatal(err)
	}
	if len(src.refunded) != 1 || src.refunded[0] != 3 {
		t.Fatalf("refunded = %v", src.refunded)
	}
}
