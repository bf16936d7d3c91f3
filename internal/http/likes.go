package http

import (
	"net/http"
	"strings"

	"github.com/mekongworks/sitekit/internal/engagement"
)

func (api *API) registerLikeRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "likes")
	mux.HandleFunc("GET "+root, api.handleLikeStatus)
	mux.HandleFunc("POST "+root, api.handleLikeToggle)
}

func (api *API) handleLikeStatus(w http.ResponseWriter, r *http.Request) {
	postID := strings.TrimSpace(r.URL.Query().Get("postId"))
	if postID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "postId is required",
		})
		return
	}
	if api.engagement == nil {
		writeJSON(w, http.StatusOK, map[string]any{"likes": 0, "userHasLiked": false})
		return
	}
	status := api.engagement.LikeStatus(r.Context(), postID, r.URL.Query().Get("userEmail"))
	writeJSON(w, http.StatusOK, map[string]any{
		"likes":        status.Count,
		"userHasLiked": status.Liked,
	})
}

type likeTogglePayload struct {
	PostID string `json:"postId"`
	Name   string `json:"userName"`
	Email  string `json:"userEmail"`
	Action string `json:"action"`
}

func (api *API) handleLikeToggle(w http.ResponseWriter, r *http.Request) {
	var payload likeTogglePayload
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

	record, err := api.engagement.Toggle(r.Context(), payload.Action, engagement.LikeInput{
		PostID: payload.PostID,
		Name:   payload.Name,
		Email:  payload.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if record != nil {
		writeJSON(w, http.StatusCreated, map[string]any{"like": record})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "unliked"})
}
