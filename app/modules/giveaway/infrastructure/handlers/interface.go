package giveawayhandlers

import "net/http"

// Handlers defines the giveaway HTTP endpoints.
type Handlers interface {
	HandleSubmitEntry(w http.ResponseWriter, r *http.Request)
	HandleSpinResult(w http.ResponseWriter, r *http.Request)
	HandleGetContent(w http.ResponseWriter, r *http.Request)
	HandleListEntries(w http.ResponseWriter, r *http.Request)
	HandleExportEntries(w http.ResponseWriter, r *http.Request)
	HandleCreateContent(w http.ResponseWriter, r *http.Request)
	HandleDeleteContent(w http.ResponseWriter, r *http.Request)
}
