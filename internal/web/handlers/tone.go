package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mhrbek/facetone/internal/pipeline"
	"github.com/mhrbek/facetone/internal/tone"
)

// Estimator runs a full skin-tone estimation for one image URL.
// Implemented by pipeline.Pipeline; tests use stubs.
type Estimator interface {
	Estimate(ctx context.Context, imageURL string) (tone.HSL, error)
}

// ToneHandler serves skin tone estimation requests
type ToneHandler struct {
	estimator Estimator
}

// NewToneHandler creates a new tone handler
func NewToneHandler(estimator Estimator) *ToneHandler {
	return &ToneHandler{estimator: estimator}
}

type toneRequest struct {
	ImageURL string `json:"imageUrl"`
}

type toneResponse struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	Hex        string  `json:"hex"`
}

// Estimate handles POST /api/v1/tone
func (h *ToneHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req toneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}

	result, err := h.estimator.Estimate(r.Context(), req.ImageURL)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toneResponse{
		Hue:        result.H,
		Saturation: result.S,
		Lightness:  result.L,
		Hex:        result.Hex(),
	})
}

// statusForError maps pipeline stage failures onto HTTP statuses.
// Upstream transport problems are gateway errors; images we fetched but
// cannot use are unprocessable.
func statusForError(err error) int {
	if errors.Is(err, pipeline.ErrNoFaceDetected) {
		return http.StatusUnprocessableEntity
	}

	var stage *pipeline.StageError
	if errors.As(err, &stage) {
		switch stage.Stage {
		case pipeline.StageFetch, pipeline.StageDetect:
			return http.StatusBadGateway
		case pipeline.StageDecode, pipeline.StageResolve, pipeline.StageSample:
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}
