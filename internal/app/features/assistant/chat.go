// internal/app/features/assistant/chat.go
package assistant

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuslink/careerhub/internal/app/services/textgen"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const maxPromptLen = 4000

type chatRequest struct {
	Prompt string `json:"prompt"`
}

// ServeChat handles POST /api/assistant/chat. Prompts run through the
// blocked-term scan before reaching the upstream generator.
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req chatRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		httpjson.BadRequest(w, "Prompt is required.")
		return
	}
	if len(prompt) > maxPromptLen {
		httpjson.BadRequest(w, "Prompt is too long.")
		return
	}
	if term := h.Safety.Check(prompt); term != "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, httpjson.CodeContentFlagged, "Prompt contains blocked material.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	reply, err := h.Generator.Complete(ctx, prompt)
	if err == textgen.ErrNotConfigured {
		httpjson.Error(w, http.StatusServiceUnavailable, httpjson.CodeServerError, "The assistant is not available right now.")
		return
	}
	if err != nil {
		h.Log.Error("assistant: generation failed", zap.String("user_id", res.UserID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, httpjson.CodeServerError, "The assistant could not answer. Try again later.")
		return
	}

	httpjson.OK(w, map[string]any{"reply": reply})
}
