// Package web serves the form-based operator surface: user registration,
// manual job search and a manual matching trigger.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/adzuna"
	"github.com/okliver/jobwatch/internal/registry"
	"github.com/okliver/jobwatch/internal/runner"
)

// Searcher yields (possibly cached) search results for the manual search
// form.
type Searcher interface {
	Fetch(params *adzuna.SearchParams) (*adzuna.SearchResult, error)
}

// Matcher triggers one matching run for all users.
type Matcher interface {
	RunAll() *runner.Report
}

type Server struct {
	registry *registry.Registry
	matcher  Matcher
	searcher Searcher
	logger   *zap.Logger
	tmpl     *template.Template
}

func New(reg *registry.Registry, matcher Matcher, searcher Searcher, logger *zap.Logger) *Server {
	return &Server{
		registry: reg,
		matcher:  matcher,
		searcher: searcher,
		logger:   logger,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Handler returns the route mux for the operator surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /users", s.handleRegister)
	mux.HandleFunc("POST /run", s.handleRun)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.logRequests(mux)
}

type pageData struct {
	Message   string
	Error     string
	Results   string
	Countries []string
	Query     string
	Location  string
	Country   string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, &pageData{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, &pageData{Error: fmt.Sprintf("parsing form: %v", err)})
		return
	}

	minSalary := 0
	if raw := strings.TrimSpace(r.PostFormValue("min_salary")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.render(w, &pageData{Error: fmt.Sprintf("minimum salary must be an integer, got %q", raw)})
			return
		}
		minSalary = parsed
	}

	user, err := s.registry.Add(
		r.PostFormValue("name"),
		r.PostFormValue("email"),
		r.PostFormValue("location"),
		r.PostFormValue("roles"),
		r.PostFormValue("skills"),
		minSalary,
	)
	if err != nil {
		s.render(w, &pageData{Error: err.Error()})
		return
	}

	s.logger.Info("registered user", zap.String("user", user.Name), zap.Int("users", s.registry.Len()))
	s.render(w, &pageData{Message: fmt.Sprintf("Added user: %s", user.Name)})
}

func (s *Server) handleRun(w http.ResponseWriter, _ *http.Request) {
	report := s.matcher.RunAll()
	s.render(w, &pageData{Results: report.String()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	data := &pageData{
		Query:    strings.TrimSpace(r.URL.Query().Get("query")),
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
		Country:  strings.TrimSpace(r.URL.Query().Get("country")),
	}

	if data.Query == "" {
		data.Error = "query is required"
		s.render(w, data)
		return
	}
	if !adzuna.IsSupportedCountry(data.Country) {
		data.Error = fmt.Sprintf("unsupported country code: %q", data.Country)
		s.render(w, data)
		return
	}

	result, err := s.searcher.Fetch(&adzuna.SearchParams{
		Query:    data.Query,
		Location: data.Location,
		Country:  data.Country,
	})
	if err != nil {
		data.Error = fmt.Sprintf("searching jobs: %v", err)
		s.render(w, data)
		return
	}

	data.Results = result.FormatTop(10)
	s.render(w, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

func (s *Server) render(w http.ResponseWriter, data *pageData) {
	data.Countries = adzuna.Countries()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
