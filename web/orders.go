package web

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sccp/api"
)

type orderRow struct {
	api.Order
	NextStatuses []string
}

type ordersView struct {
	Shell
	Orders []orderRow
}

// handleOrders lists the company's purchase orders, newest first. A failed
// fetch shows the error banner over an empty table instead of a dead page.
func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	view := ordersView{Shell: s.shell(r)}

	orders, err := s.platform.Orders(r.Context())
	if err != nil {
		s.logf("web: fetch orders: %v", err)
		view.Error = "Could not load orders."
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	view.Orders = make([]orderRow, 0, len(orders))
	for _, order := range orders {
		view.Orders = append(view.Orders, orderRow{
			Order:        order,
			NextStatuses: api.NextOrderStatuses(order.Status),
		})
	}

	s.render(w, "orders", view)
}

// handleOrderStatus forwards the supplier's production-status change. The
// offered choices were already limited to legal transitions; the server
// re-validates regardless.
func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Order not found.")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/orders", "Invalid form submission.")
		return
	}

	status := r.PostFormValue("status")
	if err := s.platform.UpdateOrderStatus(r.Context(), orderID, status); err != nil {
		s.logf("web: update order %d status: %v", orderID, err)
		s.redirectError(w, r, "/orders", "Failed to update status.")
		return
	}
	s.redirectFlash(w, r, "/orders", "Order status updated!")
}

// handlePayOrder fetches a checkout session id and redirects the browser to
// the hosted payment page. The outcome comes back via webhook on the backend
// side; this client only ever sees the success/failed landing pages.
func (s *Server) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Order not found.")
		return
	}

	checkout, err := s.platform.CreateCheckoutSession(r.Context(), orderID)
	if err != nil {
		s.logf("web: create checkout session for order %d: %v", orderID, err)
		s.redirectError(w, r, "/orders", "Could not initiate payment. Please try again.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf(s.checkoutURL, checkout.SessionID), http.StatusSeeOther)
}

func (s *Server) handlePaymentSuccess(w http.ResponseWriter, r *http.Request) {
	s.render(w, "payment_success", s.shell(r))
}

func (s *Server) handlePaymentFailed(w http.ResponseWriter, r *http.Request) {
	s.render(w, "payment_failed", s.shell(r))
}
