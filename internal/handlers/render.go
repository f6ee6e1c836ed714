package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/format"
	"laraibcreative.com/store-web/internal/seo"
)

// Renderer executes the storefront templates. In production all .tmpl
// files are parsed once at startup; in dev mode every request reparses so
// template edits show up without a restart.
type Renderer struct {
	dir string
	dev bool
	log *zap.Logger

	mu   sync.RWMutex
	tmpl *template.Template
}

// NewRenderer parses the template tree under dir. In dev mode parsing is
// deferred to the first render.
func NewRenderer(dir string, dev bool, log *zap.Logger) (*Renderer, error) {
	r := &Renderer{dir: dir, dev: dev, log: log}
	if !dev {
		t, err := parseTemplates(dir)
		if err != nil {
			return nil, err
		}
		r.tmpl = t
	}
	return r, nil
}

func parseTemplates(dir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"rupees":    format.Rupees,
		"rating":    format.Rating,
		"date":      format.Date,
		"now":       time.Now,
		"jsonld":    seo.JSON,
		"safeJS":    func(s string) template.JS { return template.JS(s) },
		"safeQuery": func(q string) template.URL { return template.URL(q) },
	}
	// ParseGlob doesn't support **, so walk the tree ourselves.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		files = append(files, path)
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func (r *Renderer) templates() (*template.Template, error) {
	if r.dev {
		return parseTemplates(r.dir)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tmpl, nil
}

// HTML executes the named template as a full response with the given
// status code.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data any) {
	t, err := r.templates()
	if err != nil {
		r.log.Error("template parse", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		r.log.Error("template exec", zap.String("template", name), zap.Error(err))
	}
}
