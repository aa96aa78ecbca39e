package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"sccp/api"
)

type companyView struct {
	Shell
	Company      api.Company
	Capabilities []api.Capability
	Catalogue    []api.Capability
	IsOwn        bool
}

// handleCompanyProfile shows a company's public page. Members of the company
// itself also get the description editor and, for suppliers, the capability
// picker backed by the full catalogue.
func (s *Server) handleCompanyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.sessions.Current()

	id, err := strconv.Atoi(chi.URLParam(r, "companyID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Company not found.")
		return
	}

	company, err := s.platform.Company(ctx, id)
	if err != nil {
		s.logf("web: fetch company %d: %v", id, err)
		s.renderErrorPage(w, r, http.StatusBadGateway, "Failed to load company profile.")
		return
	}

	view := companyView{Shell: s.shell(r), Company: company}
	view.IsOwn = sess.CompanyID == company.ID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		capabilities, err := s.platform.CompanyCapabilities(gctx, id)
		if err != nil {
			s.logf("web: fetch capabilities for company %d: %v", id, err)
			return nil
		}
		view.Capabilities = capabilities
		return nil
	})
	if view.IsOwn && sess.IsSupplier() {
		g.Go(func() error {
			catalogue, err := s.platform.Capabilities(gctx)
			if err != nil {
				s.logf("web: fetch capability catalogue: %v", err)
				return nil
			}
			view.Catalogue = catalogue
			return nil
		})
	}
	_ = g.Wait()

	s.render(w, "company", view)
}

func (s *Server) handleUpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "companyID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Company not found.")
		return
	}
	back := "/companies/" + strconv.Itoa(id)

	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, back, "Invalid form submission.")
		return
	}
	if err := s.platform.UpdateCompanyDescription(r.Context(), id, r.PostFormValue("description")); err != nil {
		s.logf("web: update company %d description: %v", id, err)
		s.redirectError(w, r, back, "Failed to update description.")
		return
	}
	s.redirectFlash(w, r, back, "Description updated!")
}

// handleUpdateCapabilities diffs the checked catalogue ids against the
// company's current set and issues one add or remove per change.
func (s *Server) handleUpdateCapabilities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.Atoi(chi.URLParam(r, "companyID"))
	if err != nil {
		s.renderErrorPage(w, r, http.StatusNotFound, "Company not found.")
		return
	}
	back := "/companies/" + strconv.Itoa(id)

	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, back, "Invalid form submission.")
		return
	}
	desired := make(map[int]bool)
	for _, raw := range r.PostForm["capability_ids"] {
		if capID, err := strconv.Atoi(raw); err == nil {
			desired[capID] = true
		}
	}

	current, err := s.platform.CompanyCapabilities(ctx, id)
	if err != nil {
		s.logf("web: fetch capabilities for company %d: %v", id, err)
		s.redirectError(w, r, back, "Failed to update capabilities.")
		return
	}
	have := make(map[int]bool, len(current))
	for _, capability := range current {
		have[capability.ID] = true
	}

	for capID := range desired {
		if have[capID] {
			continue
		}
		if err := s.platform.AddCapability(ctx, capID); err != nil {
			s.logf("web: add capability %d: %v", capID, err)
			s.redirectError(w, r, back, "Failed to update capabilities.")
			return
		}
	}
	for capID := range have {
		if desired[capID] {
			continue
		}
		if err := s.platform.RemoveCapability(ctx, capID); err != nil {
			s.logf("web: remove capability %d: %v", capID, err)
			s.redirectError(w, r, back, "Failed to update capabilities.")
			return
		}
	}

	s.redirectFlash(w, r, back, "Capabilities updated!")
}
