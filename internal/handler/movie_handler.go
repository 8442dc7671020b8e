package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stream-api/internal/model"
	"stream-api/internal/service"
	"stream-api/pkg/apierror"
)

type MovieHandler struct {
	service *service.MovieService
}

func NewMovieHandler(service *service.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "Find All Success", movies)
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.FindByID(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "Find One Success", movie)
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	movie, err := h.service.Add(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "Add Success", movie)
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	movie, err := h.service.Update(r.Context(), chi.URLParam(r, "movieId"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "Update Success", movie)
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "movieId")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "Delete Success", nil)
}
