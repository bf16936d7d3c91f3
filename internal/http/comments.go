package http

import (
	"net/http"
	"strings"

	"github.com/mekongworks/sitekit/internal/engagement"
)

func (api *API) registerCommentRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "comments")
	mux.HandleFunc("GET "+root, api.handleCommentList)
	mux.HandleFunc("POST "+root, api.handleCommentCreate)
}

func (api *API) handleCommentList(w http.ResponseWriter, r *http.Request) {
	postID := strings.TrimSpace(r.URL.Query().Get("postId"))
	if postID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "postId is required",
		})
		return
	}
	if api.engagement == nil {
		writeJSON(w, http.StatusOK, map[string]any{"comments": []any{}})
		return
	}
	comments := api.engagement.ListComments(r.Context(), postID)
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (api *API) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	var payload engagement.CreateCommentInput
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}
	if api.engagement == nil {
		writeError(w, engagement.ErrDatastoreUnavailable)
		return
	}
	comment, err := api.engagement.CreateComment(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}
