package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/models"
	"github.com/lenskeep/camvault-be/internal/repository"
	"github.com/lenskeep/camvault-be/internal/services"
	"github.com/rs/zerolog/log"
)

// maxImageUploadBytes caps camera image uploads at 10 MiB.
const maxImageUploadBytes = 10 << 20

var validConditions = []any{"mint", "excellent", "very good", "good", "fair", "poor"}

// CameraHandler handles HTTP requests for the camera catalog.
type CameraHandler struct {
	service services.CameraServiceProvider
}

// NewCameraHandler creates a new CameraHandler.
func NewCameraHandler(service services.CameraServiceProvider) *CameraHandler {
	return &CameraHandler{service: service}
}

// CameraPayload defines the structure for camera create requests.
type CameraPayload struct {
	Brand            string   `json:"brand"`
	Model            string   `json:"model"`
	YearManufactured int      `json:"year_manufactured"`
	Type             string   `json:"type"`
	FilmFormat       string   `json:"film_format"`
	Condition        string   `json:"condition"`
	SpecialFeatures  []string `json:"special_features"`
	Notes            string   `json:"notes"`
	AcquisitionDate  string   `json:"acquisition_date"`
	AcquisitionPrice *float64 `json:"acquisition_price"`
	EstimatedValue   *float64 `json:"estimated_value"`
	Images           []string `json:"images"`
}

func (p CameraPayload) Validate() error {
	currentYear := time.Now().Year()
	return validation.ValidateStruct(&p,
		validation.Field(&p.Brand, validation.Required),
		validation.Field(&p.Model, validation.Required),
		validation.Field(&p.YearManufactured, validation.Required, validation.Min(1800), validation.Max(currentYear)),
		validation.Field(&p.Type, validation.Required),
		validation.Field(&p.FilmFormat, validation.Required),
		validation.Field(&p.Condition, validation.Required, validation.In(validConditions...)),
		validation.Field(&p.AcquisitionDate, validation.Date("2006-01-02")),
	)
}

// List handles GET /cameras with pagination and filtering.
func (h *CameraHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = 10
	}
	yearMin, _ := strconv.Atoi(q.Get("year_min"))
	yearMax, _ := strconv.Atoi(q.Get("year_max"))

	filter := repository.CameraFilter{
		Brand:      q.Get("brand"),
		Type:       q.Get("type"),
		FilmFormat: q.Get("film_format"),
		Condition:  q.Get("condition"),
		YearMin:    yearMin,
		YearMax:    yearMax,
	}

	list, err := h.service.ListCameras(filter, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /cameras.
func (h *CameraHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CameraPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, apperrors.Validation(err.Error()))
		return
	}

	camera, err := h.service.CreateCamera(models.Camera{
		Brand:            payload.Brand,
		Model:            payload.Model,
		YearManufactured: payload.YearManufactured,
		Type:             payload.Type,
		FilmFormat:       payload.FilmFormat,
		Condition:        payload.Condition,
		SpecialFeatures:  payload.SpecialFeatures,
		Notes:            payload.Notes,
		AcquisitionDate:  payload.AcquisitionDate,
		AcquisitionPrice: payload.AcquisitionPrice,
		EstimatedValue:   payload.EstimatedValue,
		Images:           payload.Images,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create camera")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, camera)
}

// Get handles GET /cameras/{id}.
func (h *CameraHandler) Get(w http.ResponseWriter, r *http.Request) {
	camera, err := h.service.GetCamera(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camera)
}

// Update handles PUT /cameras/{id} with a partial update body.
func (h *CameraHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update services.CameraUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}
	if err := validateUpdate(update); err != nil {
		writeError(w, err)
		return
	}

	camera, err := h.service.UpdateCamera(chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camera)
}

func validateUpdate(update services.CameraUpdate) error {
	if update.YearManufactured != nil {
		year := *update.YearManufactured
		if year < 1800 || year > time.Now().Year() {
			return apperrors.Validation("year_manufactured out of range")
		}
	}
	if update.Condition != nil {
		if err := validation.Validate(*update.Condition, validation.In(validConditions...)); err != nil {
			return apperrors.Validation("condition must be one of mint, excellent, very good, good, fair, poor")
		}
	}
	if update.AcquisitionDate != nil && *update.AcquisitionDate != "" {
		if err := validation.Validate(*update.AcquisitionDate, validation.Date("2006-01-02")); err != nil {
			return apperrors.Validation("acquisition_date must be YYYY-MM-DD")
		}
	}
	return nil
}

// Delete handles DELETE /cameras/{id}.
func (h *CameraHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCamera(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /cameras/{id}/images with a multipart file.
func (h *CameraHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeError(w, apperrors.Validation("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperrors.Validation("missing image file"))
		return
	}
	defer file.Close()

	camera, err := h.service.AddImage(chi.URLParam(r, "id"), header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("camera_id", chi.URLParam(r, "id")).Msg("Failed to store camera image")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camera)
}
