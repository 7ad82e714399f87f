package table

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type record struct {
	Name    string
	Amount  float64
	Created string
	Seq     int
}

func testColumns() []Column[record] {
	return []Column[record]{
		{Key: "name", Title: "Name", Kind: KindString, Value: func(r record) interface{} { return r.Name }},
		{Key: "amount", Title: "Amount", Kind: KindNumber, Value: func(r record) interface{} { return r.Amount }},
		{Key: "created", Title: "Created", Kind: KindDate, Value: func(r record) interface{} { return r.Created }},
	}
}

func TestSearchMatchesAnyColumnCaseInsensitive(t *testing.T) {
	tbl := New(testColumns())
	tbl.SetData([]record{
		{Name: "Alice", Amount: 100, Created: "2024-01-01"},
		{Name: "Bob", Amount: 250, Created: "2024-02-01"},
		{Name: "Carol", Amount: 100, Created: "2024-03-01"},
	})

	tbl.Search("ALI")
	if got := tbl.Filtered(); len(got) != 1 || got[0].Name != "Alice" {
		t.Fatalf("search by name: got %v", got)
	}

	// Numeric column participates via string coercion.
	tbl.Search("250")
	if got := tbl.Filtered(); len(got) != 1 || got[0].Name != "Bob" {
		t.Fatalf("search by amount: got %v", got)
	}

	// Empty term clears the search.
	tbl.Search("")
	if got := tbl.Filtered(); len(got) != 3 {
		t.Fatalf("empty term should not filter, got %d rows", len(got))
	}
}

func TestFilterComposition(t *testing.T) {
	rows := []record{
		{Name: "a", Amount: 10},
		{Name: "b", Amount: 20},
		{Name: "c", Amount: 30},
		{Name: "d", Amount: 40},
	}
	tbl := New(testColumns())
	tbl.SetData(rows)

	f1 := func(r record) bool { return r.Amount >= 20 }
	f2 := func(r record) bool { return r.Name != "c" }
	tbl.SetFilters(f1, f2, nil) // nil must be a no-op

	got := tbl.Filtered()
	var want []record
	for _, r := range rows {
		if f1(r) && f2(r) {
			want = append(want, r)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("AND composition: got %d rows, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Name != want[i].Name {
			t.Errorf("row %d: got %q, want %q", i, got[i].Name, want[i].Name)
		}
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	var rows []record
	for i := 0; i < 30; i++ {
		rows = append(rows, record{Name: fmt.Sprintf("r%02d", i)})
	}
	tbl := New(testColumns())
	tbl.SetData(rows)
	tbl.SetPage(2)
	tbl.SetFilters(func(r record) bool { return true })
	vm := tbl.Render()
	if vm.Pagination == nil || vm.Pagination.Page != 0 {
		t.Fatalf("filter change must reset to page 0, got %+v", vm.Pagination)
	}
}

func TestPaginationInvariant(t *testing.T) {
	const n, pageSize = 23, 10
	var rows []record
	for i := 0; i < n; i++ {
		rows = append(rows, record{Name: fmt.Sprintf("r%02d", i), Seq: i})
	}
	tbl := New(testColumns())
	tbl.SetPageSize(pageSize)
	tbl.SetData(rows)

	wantPages := (n + pageSize - 1) / pageSize
	var all []record
	for p := 0; p < wantPages; p++ {
		tbl.SetPage(p)
		page := tbl.Page()
		if p < wantPages-1 && len(page) != pageSize {
			t.Fatalf("page %d has %d rows, want %d", p, len(page), pageSize)
		}
		if p == wantPages-1 && len(page) != n%pageSize {
			t.Fatalf("last page has %d rows, want %d", len(page), n%pageSize)
		}
		all = append(all, page...)
	}
	if len(all) != n {
		t.Fatalf("concatenated pages have %d rows, want %d", len(all), n)
	}
	for i, r := range all {
		if r.Seq != i {
			t.Fatalf("row %d out of order or duplicated: seq %d", i, r.Seq)
		}
	}
}

func TestPageClamp(t *testing.T) {
	tbl := New(testColumns())
	tbl.SetPageSize(10)
	var rows []record
	for i := 0; i < 15; i++ {
		rows = append(rows, record{Name: fmt.Sprintf("r%d", i)})
	}
	tbl.SetData(rows)

	tbl.SetPage(99)
	vm := tbl.Render()
	if vm.Pagination.Page != 1 {
		t.Errorf("out-of-range page should clamp to last page, got %d", vm.Pagination.Page)
	}
	tbl.SetPage(-5)
	if vm = tbl.Render(); vm.Pagination.Page != 0 {
		t.Errorf("negative page should clamp to 0, got %d", vm.Pagination.Page)
	}
}

func TestSortTypedAndReversible(t *testing.T) {
	rows := []record{
		{Name: "bob", Amount: 9, Created: "2024-03-01"},
		{Name: "Alice", Amount: 100, Created: "2024-01-02"},
		{Name: "carol", Amount: 20, Created: "2023-12-31"},
	}
	tbl := New(testColumns())
	tbl.SetData(rows)

	// Numeric sort compares as numbers, not strings: 9 < 20 < 100.
	tbl.SortBy("amount")
	got := tbl.Filtered()
	if got[0].Amount != 9 || got[1].Amount != 20 || got[2].Amount != 100 {
		t.Fatalf("numeric ascending: got %v", got)
	}

	// Same column again flips direction.
	tbl.SortBy("amount")
	got = tbl.Filtered()
	if got[0].Amount != 100 || got[2].Amount != 9 {
		t.Fatalf("numeric descending: got %v", got)
	}

	// New column resets to ascending; string compare is case-insensitive.
	tbl.SortBy("name")
	got = tbl.Filtered()
	if got[0].Name != "Alice" || got[1].Name != "bob" || got[2].Name != "carol" {
		t.Fatalf("string ascending: got %v", got)
	}

	// Date sort compares parsed timestamps.
	tbl.SortBy("created")
	got = tbl.Filtered()
	if got[0].Created != "2023-12-31" || got[2].Created != "2024-03-01" {
		t.Fatalf("date ascending: got %v", got)
	}
}

func TestSortStableOnTies(t *testing.T) {
	rows := []record{
		{Name: "a", Amount: 5, Seq: 0},
		{Name: "b", Amount: 5, Seq: 1},
		{Name: "c", Amount: 5, Seq: 2},
		{Name: "d", Amount: 1, Seq: 3},
	}
	tbl := New(testColumns())
	tbl.SetData(rows)
	tbl.SortBy("amount")
	got := tbl.Filtered()
	if got[0].Seq != 3 {
		t.Fatalf("smallest amount first, got %v", got)
	}
	for i, wantSeq := range []int{0, 1, 2} {
		if got[i+1].Seq != wantSeq {
			t.Fatalf("ties must keep original order, got %v", got)
		}
	}

	// Descending must keep tie order too (stable, not reversed within ties).
	tbl.SortBy("amount")
	got = tbl.Filtered()
	for i, wantSeq := range []int{0, 1, 2} {
		if got[i].Seq != wantSeq {
			t.Fatalf("descending ties must keep original order, got %v", got)
		}
	}
}

func TestEmptyViewHidesPagination(t *testing.T) {
	tbl := New(testColumns())
	tbl.SetData([]record{{Name: "only"}})
	tbl.Search("nomatch")
	vm := tbl.Render()
	if vm.Pagination != nil {
		t.Error("empty filtered view must hide pagination")
	}
	if vm.Placeholder == "" {
		t.Error("empty filtered view must carry a placeholder")
	}
	if len(vm.Rows) != 0 {
		t.Errorf("placeholder must not add data rows, got %d", len(vm.Rows))
	}
}

func TestRenderClampsPageWhenViewShrinks(t *testing.T) {
	rows := make([]record, 25)
	for i := range rows {
		rows[i] = record{Name: fmt.Sprintf("row%02d", i), Amount: float64(i)}
	}
	tbl := New(testColumns())
	tbl.SetData(rows)

	// A predicate over mutable state can shrink the view without going
	// through SetFilters, leaving the selected page stale.
	var limit atomic.Int64
	limit.Store(100)
	tbl.SetFilters(func(r record) bool { return r.Amount < float64(limit.Load()) })
	tbl.SetPage(2)

	limit.Store(5)
	tbl.SortBy("name") // invalidates the memoized view, keeps the page

	vm := tbl.Render()
	if vm.Pagination == nil {
		t.Fatal("pagination missing")
	}
	if vm.Pagination.Page != 0 {
		t.Errorf("page = %d, want clamped to 0", vm.Pagination.Page)
	}
	if len(vm.Rows) != 5 {
		t.Errorf("rows = %d, want 5", len(vm.Rows))
	}
	if vm.Pagination.TotalPages != 1 || vm.Pagination.HasNext {
		t.Errorf("pagination = %+v", vm.Pagination)
	}
}

func TestRenderCellsAndActions(t *testing.T) {
	invoked := 0
	tbl := New(testColumns(), Action[record]{
		Icon:    "trash",
		Label:   "delete",
		Handler: func(record) { invoked++ },
	})
	tbl.SetData([]record{{Name: "Alice", Amount: 12.5, Created: "2024-01-01"}})
	vm := tbl.Render()
	if len(vm.Rows) != 1 || vm.Rows[0].Cells[0] != "Alice" {
		t.Fatalf("unexpected rows: %+v", vm.Rows)
	}
	if len(vm.Rows[0].Actions) != 1 || vm.Rows[0].Actions[0] != "delete" {
		t.Fatalf("unexpected actions: %+v", vm.Rows[0].Actions)
	}
	if !tbl.Invoke("delete", func(r record) bool { return r.Name == "Alice" }) {
		t.Fatal("Invoke should find the row")
	}
	if invoked != 1 {
		t.Fatalf("handler invoked %d times, want 1", invoked)
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var calls int32
	d := NewDebouncer(20 * time.Millisecond)
	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("debounced calls = %d, want 1", got)
	}

	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()
	time.Sleep(40 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("Stop should cancel pending call, got %d", got)
	}
}
