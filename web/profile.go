package web

import (
	"net/http"

	"sccp/api"
)

type profileView struct {
	Shell
	Profile api.UserProfile
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.platform.MyProfile(r.Context())
	if err != nil {
		s.logf("web: fetch profile: %v", err)
		s.renderErrorPage(w, r, http.StatusBadGateway, "Failed to load your profile. Please try logging in again.")
		return
	}
	s.render(w, "profile", profileView{Shell: s.shell(r), Profile: profile})
}

// handleChangePassword validates locally the way the form did (match and
// minimum length), then forwards; the backend error body is surfaced as-is.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/profile", "Invalid form submission.")
		return
	}
	current := r.PostFormValue("current_password")
	next := r.PostFormValue("new_password")
	confirm := r.PostFormValue("confirm_password")

	if next != confirm {
		s.redirectError(w, r, "/profile", "New passwords do not match.")
		return
	}
	if len(next) < 6 {
		s.redirectError(w, r, "/profile", "New password must be at least 6 characters long.")
		return
	}

	if err := s.platform.ChangePassword(r.Context(), current, next); err != nil {
		s.logf("web: change password: %v", err)
		s.redirectError(w, r, "/profile", "Failed to change password. Check your current password and try again.")
		return
	}
	s.redirectFlash(w, r, "/profile", "Password updated successfully! You may need to log in again with your new password.")
}
