package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"sccp/api"
	"sccp/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Shell is the data every page shares: the session for role branching, the
// notification bell, and the one-shot flash/error line carried through the
// redirect after a mutation.
type Shell struct {
	Session       *session.Session
	Notifications []api.Notification
	UnreadCount   int
	ChannelState  string
	Error         string
	Flash         string
}

func (s *Server) shell(r *http.Request) Shell {
	sh := Shell{
		Session: s.sessions.Current(),
		Error:   r.URL.Query().Get("error"),
		Flash:   r.URL.Query().Get("flash"),
	}
	if sh.Session != nil && s.channel != nil {
		sh.Notifications = s.channel.Notifications()
		sh.UnreadCount = s.channel.UnreadCount()
		sh.ChannelState = s.channel.State().String()
	}
	return sh
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logf("web: render %s: %v", name, err)
	}
}

func (s *Server) renderLoading(w http.ResponseWriter) {
	s.render(w, "loading", Shell{})
}

// errorView is a whole-page failure, used when a primary fetch fails.
type errorView struct {
	Shell
	Message string
}

func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.WriteHeader(status)
	s.render(w, "error", errorView{Shell: s.shell(r), Message: message})
}

// redirectFlash and redirectError bounce back to a GET with a one-shot
// message, which doubles as the post-mutation refetch.
func (s *Server) redirectFlash(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?flash="+url.QueryEscape(message), http.StatusSeeOther)
}

func (s *Server) redirectError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}
