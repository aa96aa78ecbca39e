package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// backTo returns the page the notification bell was used from, falling back
// to the dashboard.
func backTo(r *http.Request) string {
	if ref := r.Header.Get("Referer"); ref != "" {
		return ref
	}
	return "/dashboard"
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "notificationID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if s.channel != nil {
		s.channel.MarkOneRead(id)
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if s.channel != nil {
		s.channel.MarkAllRead()
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}
