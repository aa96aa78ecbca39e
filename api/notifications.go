package api

import (
	"context"
	"net/http"
	"strconv"
)

// Notifications returns the current user's notification feed, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &notifications)
	return notifications, err
}

// MarkNotificationRead flags one notification as read on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+strconv.Itoa(id)+"/read", nil, nil, nil)
}

// MarkAllNotificationsRead flags the whole feed as read on the server.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil, nil)
}

// BuyerStats returns the buyer dashboard aggregates.
func (c *Client) BuyerStats(ctx context.Context) (BuyerStats, error) {
	var stats BuyerStats
	err := c.do(ctx, http.MethodGet, "/analytics/buyer-stats", nil, nil, &stats)
	return stats, err
}

// SupplierStats returns the supplier dashboard aggregates.
func (c *Client) SupplierStats(ctx context.Context) (SupplierStats, error) {
	var stats SupplierStats
	err := c.do(ctx, http.MethodGet, "/analytics/supplier-stats", nil, nil, &stats)
	return stats, err
}

// SpendingBySupplier returns the buyer's spend broken down per supplier.
func (c *Client) SpendingBySupplier(ctx context.Context) ([]SpendingBySupplier, error) {
	var rows []SpendingBySupplier
	err := c.do(ctx, http.MethodGet, "/analytics/spending-by-supplier", nil, nil, &rows)
	return rows, err
}
