package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"sccp/api"
	"sccp/realtime"
)

type rfqDetailView struct {
	Shell
	RFQ         api.RFQ
	Attachments []api.Attachment
	Quotes      []api.Quote
	History     []api.ChatMessage
	Live        []realtime.LiveMessage
	IsOwner     bool
	CanQuote    bool
}

// handleRFQDetail fetches the RFQ core record first; without it there is no
// page. The dependent resources (attachments, chat history, and for the
// owning buyer the quotes) are fetched concurrently and each failure only
// blanks its own section.
func (s *Server) handleRFQDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.sessions.Current()

	id, err := strconv.Atoi(chi.URLParam(r, "rfqID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "RFQ not found.")
		return
	}

	rfq, err := s.platform.RFQ(ctx, id)
	if err != nil {
		s.logf("web: fetch rfq %d: %v", id, err)
		s.renderErrorPage(w, r, http.StatusBadGateway, "Failed to load RFQ data.")
		return
	}

	view := rfqDetailView{Shell: s.shell(r), RFQ: rfq}
	view.IsOwner = sess.IsBuyer() && sess.CompanyID == rfq.BuyerCompanyID
	view.CanQuote = sess.IsSupplier() && rfq.Status == api.RFQStatusOpen

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		attachments, err := s.platform.RFQAttachments(gctx, id)
		if err != nil {
			s.logf("web: fetch attachments for rfq %d: %v", id, err)
			return nil
		}
		view.Attachments = attachments
		return nil
	})
	g.Go(func() error {
		history, err := s.platform.ChatHistory(gctx, id)
		if err != nil {
			s.logf("web: fetch chat history for rfq %d: %v", id, err)
			return nil
		}
		view.History = history
		return nil
	})
	if view.IsOwner {
		g.Go(func() error {
			quotes, err := s.platform.QuotesForRFQ(gctx, id)
			if err != nil {
				s.logf("web: fetch quotes for rfq %d: %v", id, err)
				return nil
			}
			view.Quotes = quotes
			return nil
		})
	}
	_ = g.Wait()

	// Entering the page joins the chat room; JoinRoom is a no-op unless the
	// connection is actually open.
	if s.channel != nil {
		s.channel.JoinRoom(id)
		view.Live = s.channel.LiveMessages(id)
	}

	s.render(w, "rfq_detail", view)
}

// handleCreateQuote submits the supplier's quote, then bounces back to the
// detail page so the fresh state is refetched.
func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "rfqID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "RFQ not found.")
		return
	}
	back := "/rfqs/" + strconv.Itoa(id)

	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, back, "Invalid form submission.")
		return
	}
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil {
		s.redirectError(w, r, back, "Price must be a number.")
		return
	}
	leadTime, err := strconv.Atoi(r.PostFormValue("lead_time_days"))
	if err != nil {
		s.redirectError(w, r, back, "Lead time must be a whole number of days.")
		return
	}

	params := api.CreateQuoteParams{
		Price:        price,
		LeadTimeDays: leadTime,
		Notes:        r.PostFormValue("notes"),
	}
	if err := s.platform.CreateQuote(r.Context(), id, params); err != nil {
		s.logf("web: create quote for rfq %d: %v", id, err)
		s.redirectError(w, r, back, "Failed to submit quote.")
		return
	}
	s.redirectFlash(w, r, back, "Quote submitted successfully!")
}

// handleAcceptQuote accepts a quote on the buyer's behalf. Success moves to
// the orders view; failure returns to the detail page, whose displayed
// status is unchanged because nothing was refetched as accepted.
func (s *Server) handleAcceptQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, err := strconv.Atoi(chi.URLParam(r, "quoteID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Quote not found.")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/dashboard", "Invalid form submission.")
		return
	}
	back := "/rfqs/" + r.PostFormValue("rfq_id")

	if err := s.platform.AcceptQuote(r.Context(), quoteID); err != nil {
		s.logf("web: accept quote %d: %v", quoteID, err)
		s.redirectError(w, r, back, "Failed to accept quote.")
		return
	}
	s.redirectFlash(w, r, "/orders", "Quote accepted! A purchase order has been created.")
}

// chatState is the polling payload for the live chat section.
type chatState struct {
	State string                 `json:"state"`
	Live  []realtime.LiveMessage `json:"live"`
}

func (s *Server) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "rfqID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	state := chatState{State: realtime.StateUninstantiated.String()}
	if s.channel != nil {
		state.State = s.channel.State().String()
		state.Live = s.channel.LiveMessages(id)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		s.logf("web: encode chat state: %v", err)
	}
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "rfqID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/rfqs/"+strconv.Itoa(id), "Invalid form submission.")
		return
	}
	if text := r.PostFormValue("message"); text != "" {
		// Dropped silently when the connection is not open, like the
		// disabled send button in a live client.
		s.channel.SendChat(id, text)
	}
	http.Redirect(w, r, "/rfqs/"+strconv.Itoa(id), http.StatusSeeOther)
}

// handleLeaveChat is hit by a beacon when the detail page is abandoned.
func (s *Server) handleLeaveChat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "rfqID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if s.channel != nil {
		s.channel.LeaveRoom(id)
	}
	w.WriteHeader(http.StatusNoContent)
}
