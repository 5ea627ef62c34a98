package timetracking

import (
	"log/slog"
	"net/http"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/transport"
	"github.com/peoplepulse/peoplepulse/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state, err := h.Service.Status(r.Context(), user)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, true)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, false)
}

func (h *Handler) punch(w http.ResponseWriter, r *http.Request, clockIn bool) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		state *ClockState
		err   error
	)
	if clockIn {
		state, err = h.Service.ClockIn(r.Context(), user)
	} else {
		state, err = h.Service.ClockOut(r.Context(), user)
	}
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, state)
}
