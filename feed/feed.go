package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"TeleAdmin/database"
	"TeleAdmin/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Topics the admin console subscribes to.
const (
	TopicAdminNotifications = "/topic/admin-notifications"
	TopicSystemStats        = "/topic/system-stats"
)

// MaxEntries bounds the in-memory notification list; the oldest entry is
// dropped once the cap is reached.
const MaxEntries = 50

// Feed subscribes to the admin notification topics and keeps a bounded,
// newest-first list of received messages. There is no reconnect logic: a
// dropped subscription just flips the connection indicator.
type Feed struct {
	client *redis.Client

	mu        sync.Mutex
	entries   []models.Notification
	stats     *models.DashboardStats
	connected atomic.Bool
}

func New(client *redis.Client) *Feed {
	return &Feed{client: client}
}

// Run subscribes and consumes messages until ctx is cancelled or the
// subscription dies. Meant to run on its own goroutine.
func (f *Feed) Run(ctx context.Context) {
	sub, err := database.Subscribe(ctx, f.client, TopicAdminNotifications, TopicSystemStats)
	if err != nil {
		log.Printf("Notification feed unavailable: %v", err)
		return
	}
	defer sub.Close()

	f.connected.Store(true)
	defer f.connected.Store(false)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				log.Println("Notification feed disconnected")
				return
			}
			f.dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (f *Feed) dispatch(topic string, payload []byte) {
	switch topic {
	case TopicSystemStats:
		var stats models.DashboardStats
		if err := json.Unmarshal(payload, &stats); err != nil {
			log.Printf("Discarding malformed system stats: %v", err)
			return
		}
		f.mu.Lock()
		f.stats = &stats
		f.mu.Unlock()
	default:
		var note models.Notification
		if err := json.Unmarshal(payload, &note); err != nil {
			// Plain-text messages still show up in the feed.
			note = models.Notification{Message: string(payload)}
		}
		f.add(note)
	}
}

// add prepends one notification, trimming the list to MaxEntries.
func (f *Feed) add(note models.Notification) {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append([]models.Notification{note}, f.entries...)
	if len(f.entries) > MaxEntries {
		f.entries = f.entries[:MaxEntries]
	}
}

// Entries returns the notifications, newest first.
func (f *Feed) Entries() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.entries))
	copy(out, f.entries)
	return out
}

// LiveStats returns the latest system stats pushed over the bus, or nil.
func (f *Feed) LiveStats() *models.DashboardStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stats == nil {
		return nil
	}
	s := *f.stats
	return &s
}

// IsConnected reports whether the subscription is live; it drives the
// connection indicator in the console header.
func (f *Feed) IsConnected() bool {
	return f.connected.Load()
}
