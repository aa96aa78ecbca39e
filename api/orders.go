package api

import (
	"context"
	"net/http"
	"strconv"
)

// Orders lists the purchase orders involving the current user's company.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders)
	return orders, err
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order along the production flow.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	return c.do(ctx, http.MethodPatch, "/orders/"+strconv.Itoa(orderID)+"/status", nil,
		updateOrderStatusRequest{Status: status}, nil)
}

// CreateCheckoutSession asks the backend for a hosted-checkout session id for
// an unpaid order.
func (c *Client) CreateCheckoutSession(ctx context.Context, orderID int) (CheckoutSession, error) {
	var session CheckoutSession
	err := c.do(ctx, http.MethodPost, "/orders/"+strconv.Itoa(orderID)+"/create-checkout-session", nil, nil, &session)
	return session, err
}

// orderTransitions describes the supplier-visible production flow. The server
// re-validates every transition; this only drives which choices the UI offers.
var orderTransitions = map[string][]string{
	OrderStatusPendingConfirmation: {OrderStatusInProduction, OrderStatusShipped, OrderStatusCompleted},
	OrderStatusInProduction:        {OrderStatusShipped, OrderStatusCompleted},
	OrderStatusShipped:             {},
	OrderStatusCompleted:           {},
}

// NextOrderStatuses returns the statuses an order may move to from its
// current one. Shipped and completed orders are terminal for the supplier.
func NextOrderStatuses(current string) []string {
	next, ok := orderTransitions[current]
	if !ok {
		return nil
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}
