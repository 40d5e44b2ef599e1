package http

import (
	"net/http"

	"github.com/tmaksat/newsauth/internal/utils"
)

// BuildInfo describes the running binary. Populated by the server
// entrypoint from link-time variables.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

type healthResponse struct {
	Status string    `json:"status"`
	Build  BuildInfo `json:"build"`
}

// build holds the info reported by the health endpoint.
var build = BuildInfo{Version: "N/A", Date: "N/A", Commit: "N/A"}

// SetBuildInfo records the binary's build identity for health reporting.
func SetBuildInfo(info BuildInfo) {
	if info.Version != "" {
		build.Version = info.Version
	}
	if info.Date != "" {
		build.Date = info.Date
	}
	if info.Commit != "" {
		build.Commit = info.Commit
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{Status: "ok", Build: build}, http.StatusOK)
}
