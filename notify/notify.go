package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

const (
	// ToastLifetime is how long a toast stays visible before auto-dismissal.
	ToastLifetime = 5 * time.Second
	// MaxVisible caps how many toasts are shown at once; pushing past the
	// cap evicts the oldest.
	MaxVisible = 5
)

// Toast is one transient notification.
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Modal is the single shared dialog. Opening a new modal while one is open
// replaces its content; there is no stacking.
type Modal struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Footer string `json:"footer,omitempty"`
}

// Service owns the console's toasts and the shared modal.
type Service struct {
	mu     sync.Mutex
	toasts []Toast
	modal  *Modal
	now    func() time.Time
}

func New() *Service {
	return &Service{now: time.Now}
}

// Push adds a toast, evicting the oldest once the visible cap is reached.
func (s *Service) Push(kind Kind, message string) Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	toast := Toast{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now(),
	}
	s.toasts = append(s.toasts, toast)
	if len(s.toasts) > MaxVisible {
		s.toasts = s.toasts[len(s.toasts)-MaxVisible:]
	}
	return toast
}

// Visible returns the currently visible toasts, oldest first. Expired
// toasts are dropped on read.
func (s *Service) Visible() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Dismiss removes a toast by id before its auto-expiry.
func (s *Service) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Service) pruneLocked() {
	cutoff := s.now().Add(-ToastLifetime)
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.CreatedAt.After(cutoff) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

// ShowModal opens (or replaces) the shared modal.
func (s *Service) ShowModal(title, body, footer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = &Modal{Title: title, Body: body, Footer: footer}
}

// CloseModal closes the modal if one is open.
func (s *Service) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = nil
}

// Modal returns the open modal, or nil.
func (s *Service) Modal() *Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == nil {
		return nil
	}
	m := *s.modal
	return &m
}
