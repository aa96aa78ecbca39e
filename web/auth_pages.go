package web

import (
	"context"
	"net/http"

	"sccp/api"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home", s.shell(r))
}

type loginView struct {
	Shell
	Email string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", loginView{Shell: s.shell(r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/login", "Invalid form submission.")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	_, err := s.sessions.Login(r.Context(), s.platform, email, password)
	if err != nil {
		s.logf("web: login: %v", err)
		view := loginView{Shell: s.shell(r), Email: email}
		view.Error = "Failed to login. Please check your credentials."
		s.render(w, "login", view)
		return
	}

	// A session now exists, so the realtime channel comes up with it.
	if s.channel != nil {
		s.channel.Start(context.Background())
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type registerView struct {
	Shell
	Form api.RegisterRequest
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", registerView{Shell: s.shell(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "/register", "Invalid form submission.")
		return
	}
	form := api.RegisterRequest{
		CompanyName: r.PostFormValue("company_name"),
		CompanyType: r.PostFormValue("company_type"),
		City:        r.PostFormValue("city"),
		Email:       r.PostFormValue("email"),
		Password:    r.PostFormValue("password"),
		FullName:    r.PostFormValue("full_name"),
	}

	if err := s.platform.Register(r.Context(), form); err != nil {
		s.logf("web: register: %v", err)
		view := registerView{Shell: s.shell(r), Form: form}
		view.Error = "Registration failed. Please check the details and try again."
		s.render(w, "register", view)
		return
	}

	s.redirectFlash(w, r, "/login", "Registration successful! Please log in.")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.channel != nil {
		s.channel.Stop()
	}
	if err := s.sessions.Logout(); err != nil {
		s.logf("web: logout: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
