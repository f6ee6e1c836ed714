// Package blog serves the storefront's editorial content from local
// markdown files with YAML front matter.
package blog

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no post exists for a slug.
var ErrNotFound = errors.New("blog: post not found")

// Post is one rendered blog entry.
type Post struct {
	Slug        string
	Title       string
	Summary     string
	Author      string
	Tags        []string
	Cover       string
	PublishedAt time.Time
	Body        template.HTML
}

type frontMatter struct {
	Title     string   `yaml:"title"`
	Summary   string   `yaml:"summary"`
	Author    string   `yaml:"author"`
	Tags      []string `yaml:"tags"`
	Cover     string   `yaml:"cover"`
	Published string   `yaml:"published"`
	Draft     bool     `yaml:"draft"`
}

const defaultDir = "content/blog"

// Store reads, renders and caches blog posts from a directory.
type Store struct {
	dir      string
	ttl      time.Duration
	markdown goldmark.Markdown
	policy   *bluemonday.Policy

	mu      sync.RWMutex
	posts   []Post
	expires time.Time
}

// NewStore builds a Store over dir ("" uses content/blog).
func NewStore(dir string, ttl time.Duration) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = defaultDir
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		dir:      dir,
		ttl:      ttl,
		markdown: goldmark.New(),
		policy:   bluemonday.UGCPolicy(),
	}
}

// List returns published posts, newest first.
func (s *Store) List() ([]Post, error) {
	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Get returns one post by slug.
func (s *Store) Get(slug string) (Post, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Post{}, ErrNotFound
	}
	posts, err := s.load()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func (s *Store) load() ([]Post, error) {
	now := time.Now()
	s.mu.RLock()
	if s.posts != nil && now.Before(s.expires) {
		cached := s.posts
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("blog: read dir: %w", err)
	}

	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		post, err := s.readPost(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if post != nil {
			posts = append(posts, *post)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})

	s.mu.Lock()
	s.posts = posts
	s.expires = now.Add(s.ttl)
	s.mu.Unlock()
	return posts, nil
}

// readPost parses one markdown file. Drafts return nil without error.
func (s *Store) readPost(path string) (*Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blog: read %s: %w", path, err)
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return nil, fmt.Errorf("blog: parse front matter %s: %w", path, err)
		}
	}
	if front.Draft {
		return nil, nil
	}

	var rendered bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &rendered); err != nil {
		return nil, fmt.Errorf("blog: render %s: %w", path, err)
	}
	safe := s.policy.SanitizeBytes(rendered.Bytes())

	slug := strings.TrimSuffix(filepath.Base(path), ".md")
	post := &Post{
		Slug:        sanitizeSlug(slug),
		Title:       strings.TrimSpace(front.Title),
		Summary:     strings.TrimSpace(front.Summary),
		Author:      strings.TrimSpace(front.Author),
		Tags:        front.Tags,
		Cover:       strings.TrimSpace(front.Cover),
		PublishedAt: parseDate(front.Published),
		Body:        template.HTML(safe),
	}
	if post.Title == "" {
		post.Title = prettifySlug(post.Slug)
	}
	if post.PublishedAt.IsZero() {
		if info, statErr := os.Stat(path); statErr == nil {
			post.PublishedAt = info.ModTime()
		}
	}
	return post, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339, "2006-01-02", "2006/01/02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
