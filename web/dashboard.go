package web

import (
	"net/http"
	"strconv"

	"sccp/api"
)

type dashboardView struct {
	Shell
	RFQs          []api.RFQ
	Filters       api.RFQFilters
	BuyerStats    *api.BuyerStats
	Spending      []api.SpendingBySupplier
	SupplierStats *api.SupplierStats
}

// handleDashboard shows the RFQ list plus the role's analytics sidebar.
// The RFQ fetch failing renders an empty list, not an error page, and each
// analytics fetch fails independently without taking the page down.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.sessions.Current()

	view := dashboardView{Shell: s.shell(r)}
	view.Filters = api.RFQFilters{
		Search: r.URL.Query().Get("search"),
		City:   r.URL.Query().Get("city"),
	}

	rfqs, err := s.platform.RFQs(ctx, view.Filters)
	if err != nil {
		s.logf("web: fetch rfqs: %v", err)
		rfqs = nil
	}
	view.RFQs = rfqs

	switch {
	case sess.IsBuyer():
		if stats, err := s.platform.BuyerStats(ctx); err == nil {
			view.BuyerStats = &stats
		} else {
			s.logf("web: fetch buyer stats: %v", err)
		}
		if rows, err := s.platform.SpendingBySupplier(ctx); err == nil {
			view.Spending = rows
		} else {
			s.logf("web: fetch spending by supplier: %v", err)
		}
	case sess.IsSupplier():
		if stats, err := s.platform.SupplierStats(ctx); err == nil {
			view.SupplierStats = &stats
		} else {
			s.logf("web: fetch supplier stats: %v", err)
		}
	}

	s.render(w, "dashboard", view)
}

// handleCreateRFQ posts the buyer's new RFQ as a multipart form, attachment
// included when one was selected.
func (s *Server) handleCreateRFQ(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.redirectError(w, r, "/dashboard", "Invalid form submission.")
		return
	}

	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}
	params := api.CreateRFQParams{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Quantity:    quantity,
	}

	if file, header, err := r.FormFile("attachment"); err == nil {
		defer file.Close()
		params.Attachment = file
		params.AttachmentName = header.Filename
	}

	if err := s.platform.CreateRFQ(r.Context(), params); err != nil {
		s.logf("web: create rfq: %v", err)
		s.redirectError(w, r, "/dashboard", "Failed to create RFQ.")
		return
	}
	s.redirectFlash(w, r, "/dashboard", "RFQ created successfully!")
}
