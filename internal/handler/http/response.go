// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
)

// maxPatchBytes limits the size of raw PATCH bodies.
const maxPatchBytes = 1 << 20

// dataKey is the key documents are nested under in "data".
const dataKey = "data"

func (h *Handler) writeSuccess(w http.ResponseWriter, r *http.Request, status int, body models.Envelope) {
	body.Status = models.StatusSuccess
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// writeDocument answers with {"status":"success","data":{key:doc}}.
func (h *Handler) writeDocument(w http.ResponseWriter, r *http.Request, status int, key string, doc any) {
	h.writeSuccess(w, r, status, models.Envelope{Data: map[string]any{key: doc}})
}

// writeList answers with the documents and their count.
func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, key string, docs any, n int) {
	h.writeSuccess(w, r, http.StatusOK, models.Envelope{Results: &n, Data: map[string]any{key: docs}})
}

// readPatch returns the raw request body of an update.
func readPatch(r *http.Request) ([]byte, error) {
	patch, err := io.ReadAll(io.LimitReader(r.Body, maxPatchBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrInvalidJSON, err)
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: empty body", utils.ErrInvalidJSON)
	}
	return patch, nil
}
