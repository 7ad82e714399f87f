package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Kind tells the sorter how to coerce a column's values.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

// Column declares one rendered column over rows of type T.
type Column[T any] struct {
	Key   string
	Title string
	Kind  Kind
	Value func(T) interface{}
}

// Action declares one row-level button. The table knows nothing about what
// the handler does; it only renders the button and delegates.
type Action[T any] struct {
	Icon    string
	Label   string
	Handler func(T)
}

// Pagination describes the page window of the current filtered view.
// A nil Pagination on the view model means the pager is hidden.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalRows  int64 `json:"totalRows"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// RowView is one rendered row.
type RowView struct {
	Cells   []string `json:"cells"`
	Actions []string `json:"actions,omitempty"`
}

// ViewModel is the render output: plain data, no UI binding.
type ViewModel struct {
	Columns     []string    `json:"columns"`
	Rows        []RowView   `json:"rows"`
	Placeholder string      `json:"placeholder,omitempty"`
	Pagination  *Pagination `json:"pagination,omitempty"`
}

const DefaultPageSize = 10

// Table renders an in-memory collection with substring search, caller
// supplied filters, type-aware stable sorting and client-side pagination.
type Table[T any] struct {
	mu       sync.Mutex
	columns  []Column[T]
	actions  []Action[T]
	rows     []T
	term     string
	filters  []func(T) bool
	sortKey  string
	sortAsc  bool
	page     int
	pageSize int
	filtered []T // memoized view, nil when stale
}

// New creates a table over the given columns.
func New[T any](columns []Column[T], actions ...Action[T]) *Table[T] {
	return &Table[T]{
		columns:  columns,
		actions:  actions,
		sortAsc:  true,
		pageSize: DefaultPageSize,
	}
}

// SetData replaces the snapshot wholesale, resets to page 0 and invalidates
// the memoized filtered view. The active search term and filters survive.
func (t *Table[T]) SetData(rows []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.page = 0
	t.filtered = nil
}

// Search applies a case-insensitive substring match against the string
// coerced value of every declared column. An empty term clears the search.
func (t *Table[T]) Search(term string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term = strings.ToLower(strings.TrimSpace(term))
	t.page = 0
	t.filtered = nil
}

// SetFilters replaces the caller-supplied row predicates. Predicates are
// combined with AND semantics; a nil predicate is ignored.
func (t *Table[T]) SetFilters(preds ...func(T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filters = t.filters[:0]
	for _, p := range preds {
		if p != nil {
			t.filters = append(t.filters, p)
		}
	}
	t.page = 0
	t.filtered = nil
}

// SortBy sorts by the given column key. Selecting a new column sorts
// ascending; selecting the current column again flips the direction.
func (t *Table[T]) SortBy(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sortKey == key {
		t.sortAsc = !t.sortAsc
	} else {
		t.sortKey = key
		t.sortAsc = true
	}
	t.filtered = nil
}

// SetPage selects a page of the filtered view, clamped to the valid range.
func (t *Table[T]) SetPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.applyLocked())
	max := 0
	if t.pageSize > 0 && n > 0 {
		max = (n + t.pageSize - 1) / t.pageSize
	}
	if page < 0 {
		page = 0
	}
	if max > 0 && page >= max {
		page = max - 1
	}
	t.page = page
}

// SetPageSize changes the page size and resets to page 0.
func (t *Table[T]) SetPageSize(size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if size > 0 {
		t.pageSize = size
		t.page = 0
	}
}

// Filtered returns a copy of the current filtered, sorted view.
func (t *Table[T]) Filtered() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := t.applyLocked()
	out := make([]T, len(view))
	copy(out, view)
	return out
}

// Page returns the rows of the current page.
func (t *Table[T]) Page() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := t.applyLocked()
	start := t.page * t.pageSize
	if start >= len(view) {
		return nil
	}
	end := start + t.pageSize
	if end > len(view) {
		end = len(view)
	}
	out := make([]T, end-start)
	copy(out, view[start:end])
	return out
}

// Render produces the view model for the current state. When the filtered
// view is empty a single placeholder row is implied and the pager is hidden.
func (t *Table[T]) Render() ViewModel {
	t.mu.Lock()
	defer t.mu.Unlock()

	vm := ViewModel{Columns: make([]string, len(t.columns))}
	for i, col := range t.columns {
		vm.Columns[i] = col.Title
	}

	view := t.applyLocked()
	if len(view) == 0 {
		vm.Placeholder = "No data available"
		return vm
	}

	actions := make([]string, len(t.actions))
	for i, a := range t.actions {
		actions[i] = a.Label
	}

	// The view can shrink after the page was selected; clamp so the page
	// number and the rows shown stay consistent.
	totalPages := (len(view) + t.pageSize - 1) / t.pageSize
	if t.page >= totalPages {
		t.page = totalPages - 1
	}
	start := t.page * t.pageSize
	end := start + t.pageSize
	if end > len(view) {
		end = len(view)
	}
	for _, row := range view[start:end] {
		rv := RowView{Cells: make([]string, len(t.columns)), Actions: actions}
		for i, col := range t.columns {
			rv.Cells[i] = coerceString(col.Value(row))
		}
		vm.Rows = append(vm.Rows, rv)
	}

	total := len(view)
	vm.Pagination = &Pagination{
		Page:       t.page,
		PageSize:   t.pageSize,
		TotalRows:  int64(total),
		TotalPages: totalPages,
		HasNext:    t.page < totalPages-1,
		HasPrev:    t.page > 0,
	}
	return vm
}

// Invoke runs the handler of the action with the given label against every
// row of the current page that matches the predicate.
func (t *Table[T]) Invoke(label string, match func(T) bool) bool {
	t.mu.Lock()
	var handler func(T)
	for _, a := range t.actions {
		if a.Label == label {
			handler = a.Handler
			break
		}
	}
	view := t.applyLocked()
	t.mu.Unlock()

	if handler == nil {
		return false
	}
	hit := false
	for _, row := range view {
		if match == nil || match(row) {
			handler(row)
			hit = true
		}
	}
	return hit
}

// applyLocked recomputes (or reuses) the filtered, sorted view.
// Caller must hold t.mu.
func (t *Table[T]) applyLocked() []T {
	if t.filtered != nil {
		return t.filtered
	}
	view := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if t.matchLocked(row) {
			view = append(view, row)
		}
	}
	if t.sortKey != "" {
		t.sortLocked(view)
	}
	t.filtered = view
	return view
}

func (t *Table[T]) matchLocked(row T) bool {
	for _, pred := range t.filters {
		if !pred(row) {
			return false
		}
	}
	if t.term == "" {
		return true
	}
	for _, col := range t.columns {
		if strings.Contains(strings.ToLower(coerceString(col.Value(row))), t.term) {
			return true
		}
	}
	return false
}

func (t *Table[T]) sortLocked(view []T) {
	var col *Column[T]
	for i := range t.columns {
		if t.columns[i].Key == t.sortKey {
			col = &t.columns[i]
			break
		}
	}
	if col == nil {
		return
	}
	sort.SliceStable(view, func(i, j int) bool {
		less := lessByKind(col.Kind, col.Value(view[i]), col.Value(view[j]))
		greater := lessByKind(col.Kind, col.Value(view[j]), col.Value(view[i]))
		if t.sortAsc {
			return less
		}
		return greater
	})
}

func lessByKind(kind Kind, a, b interface{}) bool {
	switch kind {
	case KindNumber:
		return coerceNumber(a) < coerceNumber(b)
	case KindDate:
		return coerceTime(a).Before(coerceTime(b))
	default:
		return strings.ToLower(coerceString(a)) < strings.ToLower(coerceString(b))
	}
}

func coerceString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// coerceNumber parses a value as float64; anything non-numeric counts as 0.
func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(coerceString(v)), 64)
	if err != nil {
		return 0
	}
	return f
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// coerceTime parses a value as a timestamp; unparseable values sort first.
func coerceTime(v interface{}) time.Time {
	if ts, ok := v.(time.Time); ok {
		return ts
	}
	s := strings.TrimSpace(coerceString(v))
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
