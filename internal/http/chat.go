package http

import (
	"net/http"

	"github.com/mekongworks/sitekit/internal/assistant"
	"github.com/mekongworks/sitekit/internal/locale"
)

func (api *API) registerChatRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "ai-chat"), api.handleChat)
}

type chatPayload struct {
	Message string `json:"message"`
	Locale  string `json:"locale,omitempty"`
}

// handleChat always answers 200 with a non-empty reply. A malformed body
// still gets the canned default rather than an error: the widget has no
// error state.
func (api *API) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	_ = decodeJSON(r, &payload)

	target := locale.Resolve(payload.Locale)
	if api.assistant == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"reply": assistant.CannedReply(payload.Message, target),
		})
		return
	}
	reply := api.assistant.Chat(r.Context(), payload.Message, target)
	writeJSON(w, http.StatusOK, map[string]any{"reply": reply.Message, "source": reply.Source})
}
