package handler

import (
	"net/http"

	"github.com/mcoot/playerhub-go/internal/api/response"
	"github.com/mcoot/playerhub-go/internal/services/roster"
)

// maxUploadSize bounds how much of a multipart upload is held in memory
const maxUploadSize = 10 << 20

// RosterHandler handles bulk roster import endpoints
type RosterHandler struct {
	rosterService *roster.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *roster.Service) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
	}
}

// UploadCSV handles POST /api/v1/players/upload-csv
func (h *RosterHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteError(w, NewInvalidRequestError("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, NewInvalidRequestError("file is required"))
		return
	}
	defer file.Close()

	created, err := h.rosterService.ImportCSV(r.Context(), header.Filename, file)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayersFromModels(created))
}
