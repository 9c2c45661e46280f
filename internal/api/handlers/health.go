package handlers

import (
	"net/http"

	"github.com/vportan/bacbot/pkg/httpext"
)

// HandleHealth answers liveness probes.
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httpext.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
