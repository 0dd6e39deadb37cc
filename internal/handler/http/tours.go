// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Query of the top-5-cheap alias.
const (
	topToursLimit  = "5"
	topToursSort   = "-ratingsAverage,price"
	topToursFields = "name,price,ratingsAverage,summary,difficulty"
)

// aliasTopTours rewrites the list query to the five best rated cheap tours.
func aliasTopTours(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.Clone(r.Context())

		values := r.URL.Query()
		values.Set("limit", topToursLimit)
		values.Set("sort", topToursSort)
		values.Set("fields", topToursFields)
		r.URL.RawQuery = values.Encode()

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) tourStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.TourService.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeDocument(w, r, http.StatusOK, "stats", stats)
}

func (h *Handler) monthlyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.services.TourService.MonthlyPlan(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeDocument(w, r, http.StatusOK, "plan", plan)
}

func (h *Handler) toursWithin(w http.ResponseWriter, r *http.Request) {
	spec, err := listSpec(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tours, err := h.services.TourService.Within(r.Context(),
		chi.URLParam(r, "distance"), chi.URLParam(r, "latlng"), chi.URLParam(r, "unit"), spec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeList(w, r, dataKey, tours, len(tours))
}

func (h *Handler) distances(w http.ResponseWriter, r *http.Request) {
	distances, err := h.services.TourService.Distances(r.Context(), chi.URLParam(r, "latlng"), chi.URLParam(r, "unit"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeDocument(w, r, http.StatusOK, dataKey, distances)
}
