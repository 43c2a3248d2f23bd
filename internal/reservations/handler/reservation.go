package handler

import (
	"encoding/json"
	"net/http"

	"courtside/internal/reservations/service"
	apperrors "courtside/pkg/errors"
	httputil "courtside/pkg/http"
	"courtside/pkg/logger"
	"courtside/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// Create books a slot and responds with the stored reservation and its
// computed price.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.Create(r.Context(), &reservation)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reservations, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *ReservationHandler) GetByCourt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservations, err := h.service.GetByCourt(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByCourt", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByCourt", "error", err)
	}
}

func (h *ReservationHandler) GetByPhone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservations, err := h.service.GetByPhone(r.Context(), ps.ByName("phone"))
	if err != nil {
		h.writeError(w, "GetByPhone", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByPhone", "error", err)
	}
}

func (h *ReservationHandler) GetUpcomingByPhone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservations, err := h.service.GetUpcomingByPhone(r.Context(), ps.ByName("phone"))
	if err != nil {
		h.writeError(w, "GetUpcomingByPhone", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "GetUpcomingByPhone", "error", err)
	}
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), ps.ByName("id"), &reservation)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

// Delete cancels a single reservation. The record survives as soft-deleted.
func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.SoftDelete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

// DeleteAll cancels every active reservation. Responds with the count when
// anything was cancelled, 204 when there was nothing to cancel.
func (h *ReservationHandler) DeleteAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.service.SoftDeleteAll(r.Context())
	if err != nil {
		h.writeError(w, "DeleteAll", err)
		return
	}

	if count == 0 {
		httputil.WriteNoContent(w)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int64{"cancelled": count}); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteAll", "error", err)
	}
}

func (h *ReservationHandler) HardDeleteAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.HardDeleteAll(r.Context()); err != nil {
		h.writeError(w, "HardDeleteAll", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.GetAll)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.PUT("/api/v1/reservations/id/:id", h.Update)
	router.DELETE("/api/v1/reservations/id/:id", h.Delete)
	router.GET("/api/v1/reservations/court/:id", h.GetByCourt)
	router.GET("/api/v1/reservations/phone/:phone", h.GetByPhone)
	router.GET("/api/v1/reservations/phone/:phone/upcoming", h.GetUpcomingByPhone)
	router.DELETE("/api/v1/reservations", h.DeleteAll)
	router.DELETE("/api/v1/admin/reservations", h.HardDeleteAll)
}
