package api

import (
	"net/http"
	"strings"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/catalog"
	"github.com/starford/hirelens/internal/cms"
)

// Page is one entry of the hub's route table together with the data it uses.
type Page struct {
	Path        string          `json:"path"`
	Name        string          `json:"name"`
	Collections []string        `json:"collections,omitempty"`
	Analyses    []analysis.Kind `json:"analyses,omitempty"`
}

// Pages is the route table. Any other non-API path redirects to "/".
var Pages = []Page{
	{Path: "/", Name: "home"},
	{Path: "/career-guidance", Name: "career-guidance", Collections: []string{cms.CareerPaths}},
	{Path: "/resume-analysis", Name: "resume-analysis", Analyses: []analysis.Kind{analysis.KindResume}},
	{Path: "/mentors", Name: "mentors", Collections: []string{cms.Mentors}},
	{Path: "/recruiter-flow", Name: "recruiter-flow", Analyses: []analysis.Kind{analysis.KindCandidates}},
	{
		Path:        "/employee-flow",
		Name:        "employee-flow",
		Collections: []string{catalog.SkillShares},
		Analyses:    []analysis.Kind{analysis.KindTransition, analysis.KindReskill},
	},
	{Path: "/admin-flow", Name: "admin-flow", Analyses: []analysis.Kind{analysis.KindAdmin}},
	{Path: "/accreditations", Name: "accreditations", Collections: []string{cms.Accreditations}},
	{Path: "/learning-resources", Name: "learning-resources", Collections: []string{cms.LearningResources}},
}

func findPage(path string) (Page, bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	for _, p := range Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// ListPages handles GET /api/pages.
//
//	@Summary		List the hub's pages
//	@Tags			pages
//	@Produce		json
//	@Success		200	{array}	Page
//	@Router			/pages [get]
func (h *Handler) ListPages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"pages": Pages})
}

// PageRoutes serves the route table outside /api: known page paths answer
// with their descriptor, unknown ones redirect to the home route. Unknown
// /api paths get a JSON 404 instead.
func PageRoutes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}
	p, ok := findPage(r.URL.Path)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
