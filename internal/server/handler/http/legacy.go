package http

import (
	"context"
	"html/template"
	"net/http"

	"github.com/afterly/afterly/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LegacyService defines the token resolution required by the legacy access
// handler.
type LegacyService interface {
	Resolve(ctx context.Context, token string) (*service.LegacyView, error)
}

// LegacyHandler serves the public read-only legacy access pages. It renders
// server-side HTML so trusted contacts need nothing but the link.
type LegacyHandler struct {
	LegacyService LegacyService
	Log           *zap.Logger
}

var legacyNotFoundTmpl = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html>
<head><title>Page Not Found</title></head>
<body>
<h1>Page Not Found</h1>
<p>The link you followed is not valid.</p>
</body>
</html>
`))

var legacyExpiredTmpl = template.Must(template.New("expired").Parse(`<!DOCTYPE html>
<html>
<head><title>Link Expired</title></head>
<body>
<h1>This link has expired</h1>
<p>The access link you followed is no longer valid. Please contact support if you believe this is an error.</p>
</body>
</html>
`))

var legacyNotAvailableTmpl = template.Must(template.New("notavailable").Parse(`<!DOCTYPE html>
<html>
<head><title>Not Available</title></head>
<body>
<h1>Access not available</h1>
<p>The information behind this link is not available at this time.</p>
</body>
</html>
`))

var legacyDashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Legacy Access - {{.OwnerName}}</title></head>
<body>
<h1>In memory of {{.OwnerName}}</h1>
{{if .DeceasedAt}}<p>Passed away on {{.DeceasedAt.Format "January 2, 2006"}}.</p>{{end}}
<p>Hello {{.ContactName}}. {{if .IsExecutor}}As the designated executor you have access to the full digital estate below.{{else}}The items below were shared with you.{{end}}</p>

<h2>Documents</h2>
{{if .Documents}}
<ul>
{{range .Documents}}
<li>{{if .IsWill}}<strong>[Will]</strong> {{end}}<a href="{{.FileURL}}">{{.Name}}</a>{{if .Description}} — {{.Description}}{{end}}</li>
{{end}}
</ul>
{{else}}<p>No documents.</p>{{end}}

<h2>Media</h2>
{{if .MediaFolders}}
{{range .MediaFolders}}
<h3>{{.Name}}</h3>
{{if .Items}}
<ul>
{{range .Items}}
<li><a href="{{.FileURL}}">{{.Name}}</a></li>
{{end}}
</ul>
{{else}}<p>Empty folder.</p>{{end}}
{{end}}
{{end}}
{{if .UnorganizedMedia}}
<h3>Other media</h3>
<ul>
{{range .UnorganizedMedia}}
<li><a href="{{.FileURL}}">{{.Name}}</a></li>
{{end}}
</ul>
{{end}}
{{if and (not .MediaFolders) (not .UnorganizedMedia)}}<p>No media.</p>{{end}}

<h2>Digital accounts</h2>
{{if .Accounts}}
<ul>
{{range .Accounts}}
<li>{{.PlatformName}} ({{.Category}}) — requested action: {{.ActionOnDeath}}{{if .Notes}}<br/>{{.Notes}}{{end}}</li>
{{end}}
</ul>
{{else}}<p>No digital accounts.</p>{{end}}
</body>
</html>
`))

// View handles GET /legacy/{token}. Unknown tokens render the generic
// not-found page so the endpoint gives away nothing about token validity.
func (h *LegacyHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.LegacyService.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.render(w, http.StatusNotFound, legacyNotFoundTmpl, nil)
		return
	}

	switch view.State {
	case service.LegacyStateExpired:
		h.render(w, http.StatusGone, legacyExpiredTmpl, nil)
	case service.LegacyStateNotAvailable:
		h.render(w, http.StatusForbidden, legacyNotAvailableTmpl, nil)
	default:
		h.render(w, http.StatusOK, legacyDashboardTmpl, view)
	}
}

func (h *LegacyHandler) render(w http.ResponseWriter, code int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := tmpl.Execute(w, data); err != nil {
		h.Log.Error("legacy page render failed", zap.Error(err))
	}
}
