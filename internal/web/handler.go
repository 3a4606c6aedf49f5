// Package web serves a single-page HTML search form over a Searcher.
package web

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"docsearch/internal/domain"
	"docsearch/internal/service"
)

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Document Search</title></head>
<body>
<h1>Document Search</h1>
<p>Enter a query to search the document folder using vector similarity.</p>
<form method="get" action="/">
  <input type="text" name="q" value="{{.Query}}" size="60" autofocus>
  <input type="number" name="k" value="{{.TopK}}" min="1" max="50">
  <button type="submit">Search</button>
</form>
{{- if .Error}}
<p class="error">Search failed: {{.Error}}</p>
{{- else if .Query}}
{{- if .Results}}
<p class="ok">Found {{len .Results}} relevant document(s):</p>
{{- range .Results}}
<div class="result">
  <h3>{{.Name}}</h3>
  <code>{{.Path}}</code> <small>distance {{printf "%.4f" .Distance}}</small>
  <pre>{{.Preview}}</pre>
</div>
{{- end}}
{{- else}}
<p class="warn">No results found.</p>
{{- end}}
{{- end}}
</body>
</html>
`))

type pageData struct {
	Query   string
	TopK    int
	Results []domain.QueryResult
	Error   string
}

// Handler renders the search form and its results.
type Handler struct {
	searcher domain.Searcher
	topK     int
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithTopK sets the default number of results.
func WithTopK(k int) Option {
	return func(h *Handler) {
		if k > 0 {
			h.topK = k
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
	}
}

func NewHandler(searcher domain.Searcher, opts ...Option) *Handler {
	h := &Handler{searcher: searcher, topK: 3, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "web")
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := pageData{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		TopK:  h.topK,
	}
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil || k < 1 {
			http.Error(w, "k must be a positive integer", http.StatusBadRequest)
			return
		}
		data.TopK = k
	}

	status := http.StatusOK
	if data.Query != "" {
		results, err := h.searcher.Search(r.Context(), data.Query, data.TopK)
		if err != nil {
			var qe *service.QueryError
			if errors.As(err, &qe) {
				data.Error = qe.Err.Error()
			} else {
				data.Error = err.Error()
				status = http.StatusServiceUnavailable
			}
			h.logger.Warn("search failed", "query", data.Query, "err", err)
		}
		data.Results = results
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("render page", "err", err)
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
