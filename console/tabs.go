package console

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Tab identifies one console view.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabUsers     Tab = "users"
	TabDoctors   Tab = "doctors"
	TabPatients  Tab = "patients"
	TabPayments  Tab = "payments"
	TabReports   Tab = "reports"
	TabSettings  Tab = "settings"
)

var tabTitles = map[Tab]string{
	TabDashboard: "Dashboard",
	TabUsers:     "User Management",
	TabDoctors:   "Doctor Management",
	TabPatients:  "Patient Management",
	TabPayments:  "Payment Management",
	TabReports:   "Reports",
	TabSettings:  "Settings",
}

// ErrUnknownTab is returned for navigation targets outside the tab set.
var ErrUnknownTab = errors.New("unknown tab")

// Loader is a view module's fetch-and-render entry point, run on every
// switch to its tab.
type Loader interface {
	Load(ctx context.Context) error
}

// Controller is the single-page navigation state machine. The initial
// state is the dashboard; there is no terminal state.
type Controller struct {
	mu         sync.Mutex
	current    Tab
	loaders    map[Tab]Loader
	leaveHooks map[Tab]func()
}

func NewController() *Controller {
	return &Controller{
		current:    TabDashboard,
		loaders:    make(map[Tab]Loader),
		leaveHooks: make(map[Tab]func()),
	}
}

// Register binds a view module to a tab.
func (c *Controller) Register(tab Tab, loader Loader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders[tab] = loader
}

// OnLeave registers a cleanup hook that runs when navigation leaves the
// given tab. Used by the payments view to drop its filter state and query
// mirror.
func (c *Controller) OnLeave(tab Tab, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leaveHooks[tab] = fn
}

// Current returns the active tab.
func (c *Controller) Current() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Title returns the page title for the active tab.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tabTitles[c.current]
}

// Activate switches to the target tab: it runs the previous tab's leave
// hook, updates the active state, then dispatches the target's load
// routine. Re-activating the current tab still reloads it.
func (c *Controller) Activate(ctx context.Context, target Tab) error {
	if _, ok := tabTitles[target]; !ok {
		return errors.Wrapf(ErrUnknownTab, "%q", target)
	}

	c.mu.Lock()
	previous := c.current
	var leave func()
	if previous != target {
		leave = c.leaveHooks[previous]
	}
	c.current = target
	loader := c.loaders[target]
	c.mu.Unlock()

	if leave != nil {
		leave()
	}
	if loader == nil {
		return nil
	}
	return loader.Load(ctx)
}

// Reset returns the controller to its initial state, used on logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = TabDashboard
}
