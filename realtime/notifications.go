package realtime

import (
	"context"

	"sccp/api"
)

// seedNotifications loads the persisted feed once at startup so the list is
// populated before any live push arrives.
func (c *Channel) seedNotifications(ctx context.Context) {
	if c.backend == nil {
		return
	}
	notifications, err := c.backend.Notifications(ctx)
	if err != nil {
		c.logf("realtime: fetch notifications: %v", err)
		return
	}
	c.mu.Lock()
	c.notifications = notifications
	c.mu.Unlock()
}

// Notifications returns a copy of the feed, newest first.
func (c *Channel) Notifications() []api.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// UnreadCount reports how many feed entries are unread.
func (c *Channel) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, n := range c.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkOneRead flips a single notification's read flag locally, then
// reconciles with the backend in the background. The local flip is not
// rolled back if the reconcile fails; the next seed overwrites any drift.
func (c *Channel) MarkOneRead(id int) {
	c.mu.Lock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].IsRead = true
			break
		}
	}
	c.mu.Unlock()

	if c.backend == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		if err := c.backend.MarkNotificationRead(ctx, id); err != nil {
			c.logf("realtime: mark notification %d read: %v", id, err)
		}
	}()
}

// MarkAllRead flips every notification's read flag locally, then reconciles
// with the backend in the background.
func (c *Channel) MarkAllRead() {
	c.mu.Lock()
	for i := range c.notifications {
		c.notifications[i].IsRead = true
	}
	c.mu.Unlock()

	if c.backend == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		if err := c.backend.MarkAllNotificationsRead(ctx); err != nil {
			c.logf("realtime: mark all notifications read: %v", err)
		}
	}()
}
