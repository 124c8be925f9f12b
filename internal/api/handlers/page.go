package handlers

import (
	"html/template"
	"log"
	"net/http"
)

// PageHandler renders the canvas page.
type PageHandler struct {
	Templates *template.Template
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.ExecuteTemplate(w, "index.tmpl", nil); err != nil {
		log.Printf("render page failed: path=%s err=%v", r.URL.Path, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
