// internal/server/dashboard/dashboard.go

// Package dashboard serves the embedded single-page dashboard.
package dashboard

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexHTML []byte

// Handler serves the dashboard page.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	}
}
