// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/service"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
	"github.com/go-chi/chi/v5"
)

// Query parameters that are not filter conditions.
const (
	paramPopulate        = "populate"
	paramIncludeInactive = "includeInactive"
	paramIncludeSecret   = "includeSecret"
)

var reservedParams = []string{paramPopulate, paramIncludeInactive, paramIncludeSecret}

// resource serves the generic create, read, update and delete routes of
// one model.
type resource[T any] struct {
	h       *Handler
	service service.CRUDService[T]

	// populate lists the relations getOne loads when the request names none.
	populate []string

	// readOptions and writeOptions derive repository options, such as
	// unscoped access, from the request.
	readOptions  func(r *http.Request) []service.ReadOption
	writeOptions func(r *http.Request) []service.ReadOption

	// On nested routes parentParam is the URL parameter holding the id of
	// the enclosing document and parentField its filterable field. Lists are
	// narrowed to the parent and created records get it through setParent.
	parentParam string
	parentField string
	setParent   func(rec *T, parentID string)
}

// nested returns a copy of res serving the routes below a parent document.
func (res resource[T]) nested(param, field string, setParent func(rec *T, parentID string)) *resource[T] {
	res.parentParam = param
	res.parentField = field
	res.setParent = setParent
	return &res
}

func (res *resource[T]) parentID(r *http.Request) string {
	if res.parentParam == "" {
		return ""
	}
	return chi.URLParam(r, res.parentParam)
}

func optionsFrom(r *http.Request, derive func(r *http.Request) []service.ReadOption) []service.ReadOption {
	if derive == nil {
		return nil
	}
	return derive(r)
}

func (res *resource[T]) createOne(w http.ResponseWriter, r *http.Request) {
	rec := new(T)
	if err := utils.ReadJSON(r, rec); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	if parent := res.parentID(r); parent != "" && res.setParent != nil {
		res.setParent(rec, parent)
	}

	created, err := res.service.Create(r.Context(), rec)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}

	res.h.writeDocument(w, r, http.StatusCreated, dataKey, created)
}

func (res *resource[T]) getOne(w http.ResponseWriter, r *http.Request) {
	relations := populateParam(r)
	if len(relations) == 0 {
		relations = res.populate
	}

	opts := optionsFrom(r, res.readOptions)
	if len(relations) > 0 {
		opts = append(opts, service.Populate(relations...))
	}

	rec, err := res.service.Get(r.Context(), chi.URLParam(r, "id"), opts...)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}

	res.h.writeDocument(w, r, http.StatusOK, dataKey, rec)
}

func (res *resource[T]) getAll(w http.ResponseWriter, r *http.Request) {
	spec, err := listSpec(r)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	if parent := res.parentID(r); parent != "" {
		spec = spec.Where(res.parentField, query.OpEq, parent)
	}

	opts := optionsFrom(r, res.readOptions)
	if relations := populateParam(r); len(relations) > 0 {
		opts = append(opts, service.Populate(relations...))
	}

	records, err := res.service.List(r.Context(), spec, opts...)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []T{}
	}

	docs, err := query.Project(records, spec.Fields)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}

	res.h.writeList(w, r, dataKey, docs, len(records))
}

func (res *resource[T]) updateOne(w http.ResponseWriter, r *http.Request) {
	patch, err := readPatch(r)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}

	updated, err := res.service.Update(r.Context(), chi.URLParam(r, "id"), patch, optionsFrom(r, res.writeOptions)...)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}

	res.h.writeDocument(w, r, http.StatusOK, dataKey, updated)
}

func (res *resource[T]) deleteOne(w http.ResponseWriter, r *http.Request) {
	if err := res.service.Delete(r.Context(), chi.URLParam(r, "id"), optionsFrom(r, res.writeOptions)...); err != nil {
		res.h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listSpec parses the list query of r, ignoring the reserved parameters.
func listSpec(r *http.Request) (query.Spec, error) {
	values := r.URL.Query()
	for _, key := range reservedParams {
		values.Del(key)
	}
	return query.Parse(values)
}

func populateParam(r *http.Request) []string {
	var relations []string
	for _, value := range r.URL.Query()[paramPopulate] {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				relations = append(relations, name)
			}
		}
	}
	return relations
}

// unscopedWhen returns unscoped access when the query parameter param is
// "true" and the current user has one of roles. No roles means the route
// already restricts access.
func unscopedWhen(param string, roles ...models.Role) func(r *http.Request) []service.ReadOption {
	return func(r *http.Request) []service.ReadOption {
		if r.URL.Query().Get(param) != "true" {
			return nil
		}
		if len(roles) > 0 {
			user, ok := utils.CurrentUser(r.Context())
			if !ok || !slices.Contains(roles, user.Role) {
				return nil
			}
		}
		return []service.ReadOption{service.Unscoped()}
	}
}

func alwaysUnscoped(*http.Request) []service.ReadOption {
	return []service.ReadOption{service.Unscoped()}
}
