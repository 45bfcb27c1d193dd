package services

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/api"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
)

type Handler struct {
	svc    *ItemService
	logger *zap.SugaredLogger
}

func NewHandler(svc *ItemService, logger *zap.SugaredLogger) *Handler {
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
	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in entity.Input
	if err := api.Bind(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	item, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Infow("service created", "id", item.ID, "name", item.Name)
	api.WriteJSON(w, http.StatusOK, item)
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
	api.WriteAck(w, "Service updated successfully.")
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
	api.WriteAck(w, "Service deleted successfully.")
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		err = api.NotFoundError("Service not found")
	}
	api.WriteError(w, r, h.logger, err)
}
