package handlers

import (
	"fmt"
	"net/http"
)

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		fmt.Fprintf(w, "dashboard is alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}
