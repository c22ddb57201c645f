// internal/app/features/questions/questions.go
package questions

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuslink/careerhub/internal/app/policy/accesspolicy"
	"github.com/campuslink/careerhub/internal/app/system/authz"
	"github.com/campuslink/careerhub/internal/app/system/gates"
	"github.com/campuslink/careerhub/internal/app/system/htmlsanitize"
	"github.com/campuslink/careerhub/internal/app/system/httpjson"
	"github.com/campuslink/careerhub/internal/app/system/normalize"
	"github.com/campuslink/careerhub/internal/app/system/paging"
	"github.com/campuslink/careerhub/internal/app/system/timeouts"
	"github.com/campuslink/careerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Company  string `json:"company"`
	Topic    string `json:"topic"`
}

type questionResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer,omitempty"`
	Company   string `json:"company,omitempty"`
	Topic     string `json:"topic,omitempty"`
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	CreatedAt string `json:"created_at"`
}

func toQuestionResponse(q models.InterviewQuestion) questionResponse {
	return questionResponse{
		ID:        q.ID.Hex(),
		Question:  q.Question,
		Answer:    q.Answer,
		Company:   q.Company,
		Topic:     q.Topic,
		OwnerID:   q.OwnerID.Hex(),
		OwnerName: q.OwnerName,
		CreatedAt: q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeCreate handles POST /api/questions. Professors and alumni share
// interview questions.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	status, _ := authz.VerificationStatus(r)
	if err := accesspolicy.RequireCreate(accesspolicy.KindInterviewQuestion, res.Role, status); err != nil {
		httpjson.Forbidden(w, "Only professors and alumni can post interview questions.")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body.")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		httpjson.BadRequest(w, "Question text is required.")
		return
	}
	if term := h.Safety.CheckAll(question, req.Answer); term != "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, httpjson.CodeContentFlagged, "Content contains blocked material.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.Questions.Create(ctx, models.InterviewQuestion{
		Question:  question,
		Answer:    htmlsanitize.Sanitize(req.Answer),
		Company:   strings.TrimSpace(req.Company),
		Topic:     normalize.QueryParam(req.Topic),
		OwnerID:   res.UserID,
		OwnerName: res.Name,
	})
	if err != nil {
		h.Log.Error("questions: create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, toQuestionResponse(q))
}

// ServeList handles GET /api/questions (with optional ?company= and ?topic=
// filters). Any authenticated user may browse the bank.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := paging.ParseLimit(r)
	qs, err := h.Questions.List(ctx,
		normalize.QueryParam(r.URL.Query().Get("company")),
		normalize.QueryParam(r.URL.Query().Get("topic")),
		paging.LookAhead(limit))
	if err != nil {
		h.Log.Error("questions: list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	hasMore := paging.Trim(&qs, limit)
	out := make([]questionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionResponse(q))
	}
	httpjson.OK(w, map[string]any{"questions": out, "has_more": hasMore})
}

// ServeDelete handles DELETE /api/questions/{id}. The owner or an admin may
// remove a question.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Question not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.Questions.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.NotFound(w, "Question not found.")
		return
	}
	if err != nil {
		h.Log.Error("questions: load for delete failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if q.OwnerID != res.UserID && !authz.IsAdmin(r) {
		httpjson.Forbidden(w, "Only the owner or an admin can delete this question.")
		return
	}

	if err := h.Questions.Delete(ctx, id); err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("questions: delete failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{"deleted": true})
}
