package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"appeal-archive/internal/db"
	"appeal-archive/internal/flash"
	"appeal-archive/internal/models"
	"appeal-archive/internal/news"
)

const (
	msgNewsCreated = "Новость успешно создана."
	msgNewsUpdated = "Новость успешно обновлена."
	msgNewsDeleted = "Новость успешно удалена."
)

type newsForm struct {
	Item    *models.News
	Title   string
	Content string
}

func (s *Server) handleAdminNewsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.news.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "admin/news_list.html", http.StatusOK, map[string]any{"NewsList": items})
}

func (s *Server) handleAdminNewsForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "admin/news_form.html", http.StatusOK, newsForm{})
}

func (s *Server) handleAdminNewsCreate(w http.ResponseWriter, r *http.Request) {
	title, content := r.FormValue("title"), r.FormValue("content")

	_, err := s.news.Create(r.Context(), title, content)
	if errors.Is(err, news.ErrEmptyFields) {
		s.render(w, r, "admin/news_form.html", http.StatusOK, newsForm{Title: title, Content: content},
			flash.Message{Kind: flash.Error, Text: msgFillAllFields})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.jar.Add(w, r, flash.Message{Kind: flash.Info, Text: msgNewsCreated})
	http.Redirect(w, r, "/admin/news", http.StatusFound)
}

func (s *Server) handleAdminNewsEditForm(w http.ResponseWriter, r *http.Request) {
	item, ok := s.loadNews(w, r)
	if !ok {
		return
	}
	s.render(w, r, "admin/news_form.html", http.StatusOK, newsForm{Item: item, Title: item.Title, Content: item.Content})
}

func (s *Server) handleAdminNewsUpdate(w http.ResponseWriter, r *http.Request) {
	item, ok := s.loadNews(w, r)
	if !ok {
		return
	}
	title, content := r.FormValue("title"), r.FormValue("content")

	_, err := s.news.Update(r.Context(), item.ID, title, content)
	switch {
	case errors.Is(err, news.ErrEmptyFields):
		s.render(w, r, "admin/news_form.html", http.StatusOK, newsForm{Item: item, Title: title, Content: content},
			flash.Message{Kind: flash.Error, Text: msgFillAllFields})
		return
	case errors.Is(err, db.ErrNewsNotFound):
		s.notFound(w, r)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}
	s.jar.Add(w, r, flash.Message{Kind: flash.Info, Text: msgNewsUpdated})
	http.Redirect(w, r, "/admin/news", http.StatusFound)
}

func (s *Server) handleAdminNewsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.notFound(w, r)
		return
	}
	err = s.news.Delete(r.Context(), id)
	if errors.Is(err, db.ErrNewsNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.jar.Add(w, r, flash.Message{Kind: flash.Info, Text: msgNewsDeleted})
	http.Redirect(w, r, "/admin/news", http.StatusFound)
}

// loadNews fetches the news item named by the {id} route variable,
// answering 404 itself when there is none.
func (s *Server) loadNews(w http.ResponseWriter, r *http.Request) (*models.News, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.notFound(w, r)
		return nil, false
	}
	item, err := s.news.Get(r.Context(), id)
	if errors.Is(err, db.ErrNewsNotFound) {
		s.notFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return item, true
}
