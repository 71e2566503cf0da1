package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
	"go.uber.org/zap"
)

// Tab selects which notifications the list shows
type Tab string

const (
	TabAll    Tab = "all"
	TabUnread Tab = "unread"
)

// EmptyState tells the surface which placeholder to render
type EmptyState string

const (
	EmptyNone            EmptyState = "none"
	EmptyNoNotifications EmptyState = "no_notifications"
	EmptyNoMatches       EmptyState = "no_matches"
	EmptyNoUnread        EmptyState = "no_unread"
)

// NotificationView is what the notification screen renders
type NotificationView struct {
	Loading       bool                  `json:"loading"`
	Tab           Tab                   `json:"tab"`
	Query         string                `json:"query"`
	Total         int                   `json:"total"`
	UnreadCount   int                   `json:"unread_count"`
	Notifications []models.Notification `json:"notifications"`
	EmptyState    EmptyState            `json:"empty_state"`
}

// NotificationFeed owns the notification list, read flags, tab and search filter.
// The visible list is always derived from the source, never stored.
type NotificationFeed struct {
	mu sync.Mutex

	fetcher NotificationFetcher
	marker  NotificationMarker
	logger  *zap.Logger

	notifications []models.Notification
	tab           Tab
	query         string
	loading       bool
	loaded        bool
}

// NewNotificationFeed builds the model. When the fetcher also implements
// NotificationMarker, read flags are written back through it.
func NewNotificationFeed(fetcher NotificationFetcher, logger *zap.Logger) *NotificationFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &NotificationFeed{
		fetcher: fetcher,
		logger:  logger,
		tab:     TabAll,
	}
	if m, ok := fetcher.(NotificationMarker); ok {
		f.marker = m
	}
	return f
}

// Load replaces the list with the collaborator's notifications, newest first.
// Notifications already read in the current list stay read. A failed fetch
// keeps the current list.
func (f *NotificationFeed) Load(ctx context.Context) {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	fetched, err := f.fetcher.FetchNotifications(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		metrics.CollaboratorFailed("notifications")
		f.logger.Error("failed to fetch notifications", zap.Error(err))
		return
	}
	read := make(map[string]bool)
	for _, n := range f.notifications {
		if n.Read {
			read[n.ID] = true
		}
	}
	f.loaded = true
	f.notifications = append([]models.Notification(nil), fetched...)
	for i := range f.notifications {
		if read[f.notifications[i].ID] {
			f.notifications[i].Read = true
		}
	}
}

// Loaded reports whether a fetch has ever succeeded
func (f *NotificationFeed) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

// Replace installs a notification list directly
func (f *NotificationFeed) Replace(notifications []models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append([]models.Notification(nil), notifications...)
}

func (f *NotificationFeed) MarkAllRead(ctx context.Context) {
	f.mu.Lock()
	for i := range f.notifications {
		f.notifications[i].Read = true
	}
	f.mu.Unlock()

	if f.marker == nil {
		return
	}
	if err := f.marker.MarkAllNotificationsRead(ctx); err != nil {
		metrics.CollaboratorFailed("notifications")
		f.logger.Error("failed to persist read-all", zap.Error(err))
	}
}

// MarkRead flags one notification as read; unknown ids are ignored
func (f *NotificationFeed) MarkRead(ctx context.Context, id string) {
	f.mu.Lock()
	found := false
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
			found = true
			break
		}
	}
	f.mu.Unlock()

	if !found || f.marker == nil {
		return
	}
	if err := f.marker.MarkNotificationRead(ctx, id); err != nil {
		metrics.CollaboratorFailed("notifications")
		f.logger.Error("failed to persist read flag", zap.String("notification_id", id), zap.Error(err))
	}
}

func (f *NotificationFeed) SetSearchQuery(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = text
}

// SetActiveTab switches the tab; values other than all and unread are ignored
func (f *NotificationFeed) SetActiveTab(tab Tab) {
	if tab != TabAll && tab != TabUnread {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tab = tab
}

func (f *NotificationFeed) Visible() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visibleLocked()
}

func (f *NotificationFeed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unreadLocked()
}

// IsEmpty reports whether there are no notifications at all, regardless of filters
func (f *NotificationFeed) IsEmpty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications) == 0
}

func (f *NotificationFeed) EmptyState() EmptyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emptyStateLocked(len(f.visibleLocked()))
}

func (f *NotificationFeed) View() NotificationView {
	f.mu.Lock()
	defer f.mu.Unlock()

	visible := f.visibleLocked()
	return NotificationView{
		Loading:       f.loading,
		Tab:           f.tab,
		Query:         f.query,
		Total:         len(f.notifications),
		UnreadCount:   f.unreadLocked(),
		Notifications: visible,
		EmptyState:    f.emptyStateLocked(len(visible)),
	}
}

func (f *NotificationFeed) visibleLocked() []models.Notification {
	needle := strings.ToLower(f.query)
	visible := make([]models.Notification, 0, len(f.notifications))
	for _, n := range f.notifications {
		if f.tab == TabUnread && n.Read {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(n.Username), needle) &&
			!strings.Contains(strings.ToLower(n.Content), needle) {
			continue
		}
		visible = append(visible, n)
	}
	return visible
}

func (f *NotificationFeed) unreadLocked() int {
	count := 0
	for _, n := range f.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (f *NotificationFeed) emptyStateLocked(visible int) EmptyState {
	switch {
	case len(f.notifications) == 0:
		return EmptyNoNotifications
	case visible > 0:
		return EmptyNone
	case f.query != "":
		return EmptyNoMatches
	case f.tab == TabUnread:
		return EmptyNoUnread
	default:
		return EmptyNoMatches
	}
}
