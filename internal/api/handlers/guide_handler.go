package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/code4imabari/kyukyu-annai/internal/application/services"
	apperrors "github.com/code4imabari/kyukyu-annai/pkg/errors"
)

// ErrAudioNotFound is the user-facing message for a missing announcement artifact.
const ErrAudioNotFound = "音声データが見つかりません"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// GuideService defines the guide operations used by the handler.
type GuideService interface {
	DateRange(ctx context.Context) (*services.DateRange, error)
	Day(ctx context.Context, dateKey string) (*services.DayView, error)
	EnsureDayAudio(ctx context.Context, dateKey string) error
	AudioPath(dateKey string) (string, bool)
}

// GuideHandler handles the duty-hospital guide endpoints.
type GuideHandler struct {
	service GuideService
}

// NewGuideHandler creates a new guide handler.
func NewGuideHandler(service GuideService) *GuideHandler {
	return &GuideHandler{service: service}
}

// GetDates handles GET /api/schedule/dates
func (h *GuideHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.DateRange(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load feed for date range")
		respondWithAppError(w, err, "failed to load schedule feed")
		return
	}

	respondWithJSON(w, http.StatusOK, dates)
}

// GetDay handles GET /api/schedule/days/{date}
func (h *GuideHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	dateKey := r.PathValue("date")
	if !dateKeyPattern.MatchString(dateKey) {
		respondWithError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	day, err := h.service.Day(r.Context(), dateKey)
	if err != nil {
		respondWithAppError(w, err, "failed to load schedule feed")
		return
	}

	respondWithJSON(w, http.StatusOK, day)
}

// GetAudio handles GET /api/schedule/days/{date}/audio. The artifact is
// synthesized on first access; afterwards the stored file is served as-is.
func (h *GuideHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	dateKey := r.PathValue("date")
	if !dateKeyPattern.MatchString(dateKey) {
		respondWithError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	if err := h.service.EnsureDayAudio(r.Context(), dateKey); err != nil {
		log.Error().Err(err).Str("date", dateKey).Msg("failed to prepare announcement audio")
		respondWithAppError(w, err, "failed to synthesize announcement")
		return
	}

	path, ok := h.service.AudioPath(dateKey)
	if !ok {
		respondWithError(w, http.StatusNotFound, ErrAudioNotFound)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

// respondWithAppError maps the error taxonomy onto HTTP statuses: not-found
// is recovered as a user-facing 404, external collaborator failures surface
// as 502, everything else is a 500.
func respondWithAppError(w http.ResponseWriter, err error, externalMessage string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, externalMessage)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
