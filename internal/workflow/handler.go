package workflow

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/transport"
	"github.com/peoplepulse/peoplepulse/pkg/logger"
)

type ServiceAPI interface {
	Submit(ctx context.Context, actor *internal.Principal, dto SubmitRequestDTO) (*Request, error)
	Get(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error)
	List(ctx context.Context, actor *internal.Principal, filters ListFilters, limit, offset int) ([]*Request, error)
	Approve(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error)
	Reject(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error)
	Start(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error)
	Escalate(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error)
	BulkApprove(ctx context.Context, actor *internal.Principal, dto BulkActionDTO) (*BulkResult, error)
	BulkReject(ctx context.Context, actor *internal.Principal, dto BulkActionDTO) (*BulkResult, error)
	AddComment(ctx context.Context, actor *internal.Principal, requestID int64, dto AddCommentDTO) (*Comment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("SubmitRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Submit(r.Context(), user, dto)
	if err != nil {
		h.Logger.Error("SubmitRequest: service error", "error", err, "user_id", user.ID)
		h.HandleError(w, err)
		return
	}

	h.Logger.Info("SubmitRequest: request created",
		"request_id", req.ID,
		"request_type", req.RequestType,
		"user_id", user.ID,
		"assigned_to", req.AssignedTo)

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	req, err := h.Service.Get(r.Context(), user, requestID)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query := r.URL.Query()
	filters := ListFilters{
		Status:      query.Get("status"),
		RequestType: query.Get("request_type"),
		Priority:    query.Get("priority"),
		Search:      query.Get("search"),
	}

	limit := 50
	offset := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	requests, err := h.Service.List(r.Context(), user, filters, limit, offset)
	if err != nil {
		h.Logger.Error("ListRequests: service error", "error", err, "user_id", user.ID)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decision(w, r, h.Service.Approve)
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decision(w, r, h.Service.Reject)
}

func (h *Handler) StartRequest(w http.ResponseWriter, r *http.Request) {
	h.decision(w, r, h.Service.Start)
}

func (h *Handler) EscalateRequest(w http.ResponseWriter, r *http.Request) {
	h.decision(w, r, h.Service.Escalate)
}

func (h *Handler) BulkApprove(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.Service.BulkApprove)
}

func (h *Handler) BulkReject(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.Service.BulkReject)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto AddCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddComment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.AddComment(r.Context(), user, requestID, dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) decision(w http.ResponseWriter, r *http.Request, action func(context.Context, *internal.Principal, int64) (*Request, error)) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	req, err := action(r.Context(), user, requestID)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) bulk(w http.ResponseWriter, r *http.Request, action func(context.Context, *internal.Principal, BulkActionDTO) (*BulkResult, error)) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto BulkActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("bulk action: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := action(r.Context(), user, dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) requestID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
