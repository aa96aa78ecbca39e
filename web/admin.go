package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"sccp/api"
)

type adminView struct {
	Shell
	Companies []api.Company
	Users     []api.UserProfile
}

// handleAdmin shows the moderation panel: all companies with their
// verification state and all user accounts. Either list failing blanks its
// own table only.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	view := adminView{Shell: s.shell(r)}

	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		companies, err := s.platform.AdminCompanies(gctx)
		if err != nil {
			s.logf("web: fetch admin companies: %v", err)
			return nil
		}
		view.Companies = companies
		return nil
	})
	g.Go(func() error {
		users, err := s.platform.AdminUsers(gctx)
		if err != nil {
			s.logf("web: fetch admin users: %v", err)
			return nil
		}
		view.Users = users
		return nil
	})
	_ = g.Wait()

	s.render(w, "admin", view)
}

func (s *Server) handleVerifyCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "companyID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Company not found.")
		return
	}
	if err := s.platform.VerifyCompany(r.Context(), id); err != nil {
		s.logf("web: verify company %d: %v", id, err)
		s.redirectError(w, r, "/admin", "Failed to verify company.")
		return
	}
	s.redirectFlash(w, r, "/admin", "Company verified!")
}

func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "User not found.")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/admin", "Invalid form submission.")
		return
	}

	active := r.PostFormValue("is_active") == "true"
	if err := s.platform.UpdateUserStatus(r.Context(), userID, active); err != nil {
		s.logf("web: update user %d status: %v", userID, err)
		s.redirectError(w, r, "/admin", "Failed to update user status.")
		return
	}
	s.redirectFlash(w, r, "/admin", "User status updated!")
}
