package handler

import "net/http"

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the REST API project!"

// HandleHome answers GET / so the service can be checked without credentials.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ErrorResponse{Message: WelcomeMessage})
}

// HandleNotFound answers every unmatched route, including a known path
// requested with the wrong method.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Route Not Found"})
}
