package web

import "net/http"

// requireSession gates a page on an authenticated session. While the session
// store is still initializing no decision is made yet — the guard renders the
// loading view instead of redirecting, so a session that exists only in
// storage never causes a spurious bounce to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.sessions.Initializing() {
			s.renderLoading(w)
			return
		}
		if s.sessions.Current() == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin additionally demands the admin flag. Non-admins go back to the
// home page rather than the login page.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.sessions.Initializing() {
			s.renderLoading(w)
			return
		}
		sess := s.sessions.Current()
		if sess == nil || !sess.IsAdmin {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
