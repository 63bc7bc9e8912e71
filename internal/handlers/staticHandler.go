package handlers

import (
	"embed"
	"net/http"
)

//go:embed static
var staticPages embed.FS

func servePage(w http.ResponseWriter, name string) {
	page, err := staticPages.ReadFile("static/" + name)
	if err != nil {
		logRH.Error("Missing embedded page", "name", name)
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// ChatPageHandler serves the visitor-facing chat widget page.
func ChatPageHandler(w http.ResponseWriter, r *http.Request) {
	servePage(w, "index.html")
}

// AdminPageHandler serves the document management page.
func AdminPageHandler(w http.ResponseWriter, r *http.Request) {
	servePage(w, "admin.html")
}
