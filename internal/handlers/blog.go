package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/blog"
	"laraibcreative.com/store-web/internal/seo"
)

// BlogIndexData is the journal index view model.
type BlogIndexData struct {
	Layout
	Posts []blog.Post
}

// BlogPostData is the single-post view model.
type BlogPostData struct {
	Layout
	Post blog.Post
}

// BlogIndex lists the journal posts, newest first.
func (s *Server) BlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blog.List()
	if err != nil {
		s.log.Error("blog list", zap.Error(err))
		http.Error(w, "journal unavailable", http.StatusInternalServerError)
		return
	}
	s.render.HTML(w, http.StatusOK, "blog", BlogIndexData{
		Layout: s.layout(r, "Journal"),
		Posts:  posts,
	})
}

// BlogPost renders one journal post.
func (s *Server) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := s.blog.Get(slug)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			s.notFound(w, r)
			return
		}
		s.log.Error("blog post", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "journal unavailable", http.StatusInternalServerError)
		return
	}

	layout := s.layout(r, post.Title)
	layout.Meta = seo.Meta{
		Title:       post.Title,
		Description: post.Summary,
		Canonical:   "/blog/" + post.Slug,
		JSONLD: []string{seo.JSON(seo.Article(
			post.Title, "/blog/"+post.Slug, post.Cover, post.Author,
			post.PublishedAt.Format("2006-01-02"),
		))},
	}

	s.render.HTML(w, http.StatusOK, "blog_post", BlogPostData{
		Layout: layout,
		Post:   post,
	})
}
