package project

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/api"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/project/entity"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in entity.Input
	if err := api.Bind(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Infow("project created", "id", p.ID, "category", p.Category)
	api.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in entity.Input
	if err := api.Bind(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Update(r.Context(), id, in); err != nil {
		h.fail(w, r, err)
		return
	}
	api.WriteAck(w, "Project updated successfully.")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	api.WriteAck(w, "Project deleted successfully.")
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		err = api.NotFoundError("Project not found")
	}
	api.WriteError(w, r, h.logger, err)
}
