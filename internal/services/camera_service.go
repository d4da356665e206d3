package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/models"
	"github.com/lenskeep/camvault-be/internal/repository"
)

// CameraUpdate carries a partial camera update. Nil fields are left
// unchanged.
type CameraUpdate struct {
	Brand            *string  `json:"brand"`
	Model            *string  `json:"model"`
	YearManufactured *int     `json:"year_manufactured"`
	Type             *string  `json:"type"`
	FilmFormat       *string  `json:"film_format"`
	Condition        *string  `json:"condition"`
	SpecialFeatures  []string `json:"special_features"`
	Notes            *string  `json:"notes"`
	AcquisitionDate  *string  `json:"acquisition_date"`
	AcquisitionPrice *float64 `json:"acquisition_price"`
	EstimatedValue   *float64 `json:"estimated_value"`
	Images           []string `json:"images"`
}

// CameraServiceProvider defines the interface for camera services.
type CameraServiceProvider interface {
	CreateCamera(camera models.Camera) (models.Camera, error)
	GetCamera(id string) (models.Camera, error)
	ListCameras(filter repository.CameraFilter, skip, limit int) (models.CameraList, error)
	UpdateCamera(id string, update CameraUpdate) (models.Camera, error)
	DeleteCamera(id string) error
	AddImage(id, filename string, data io.Reader) (models.Camera, error)
	StatsByBrand() ([]models.BrandStat, error)
	StatsByType() ([]models.TypeStat, error)
	StatsByDecade() ([]models.DecadeStat, error)
	TotalValue() (models.ValueStat, error)
	ValuationHistory(limit int) ([]models.ValuationPoint, error)
}

// CameraService provides business logic for the camera catalog.
type CameraService struct {
	repo      repository.CameraRepositoryProvider
	imagePath string
}

// NewCameraService creates a new CameraService.
func NewCameraService(repo repository.CameraRepositoryProvider, imagePath string) *CameraService {
	return &CameraService{repo: repo, imagePath: imagePath}
}

// CreateCamera stores a new camera.
func (s *CameraService) CreateCamera(camera models.Camera) (models.Camera, error) {
	return s.repo.Create(camera)
}

// GetCamera retrieves a camera by ID.
func (s *CameraService) GetCamera(id string) (models.Camera, error) {
	return s.repo.GetByID(id)
}

// ListCameras retrieves a filtered page of cameras with pagination
// metadata.
func (s *CameraService) ListCameras(filter repository.CameraFilter, skip, limit int) (models.CameraList, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}

	cameras, err := s.repo.List(filter, skip, limit)
	if err != nil {
		return models.CameraList{}, err
	}
	total, err := s.repo.Count(filter)
	if err != nil {
		return models.CameraList{}, err
	}

	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}

	return models.CameraList{
		Items: cameras,
		Total: total,
		Page:  skip/limit + 1,
		Size:  limit,
		Pages: pages,
	}, nil
}

// UpdateCamera merges the provided fields into the stored camera.
func (s *CameraService) UpdateCamera(id string, update CameraUpdate) (models.Camera, error) {
	camera, err := s.repo.GetByID(id)
	if err != nil {
		return models.Camera{}, err
	}

	if update.Brand != nil {
		camera.Brand = *update.Brand
	}
	if update.Model != nil {
		camera.Model = *update.Model
	}
	if update.YearManufactured != nil {
		camera.YearManufactured = *update.YearManufactured
	}
	if update.Type != nil {
		camera.Type = *update.Type
	}
	if update.FilmFormat != nil {
		camera.FilmFormat = *update.FilmFormat
	}
	if update.Condition != nil {
		camera.Condition = *update.Condition
	}
	if update.SpecialFeatures != nil {
		camera.SpecialFeatures = update.SpecialFeatures
	}
	if update.Notes != nil {
		camera.Notes = *update.Notes
	}
	if update.AcquisitionDate != nil {
		camera.AcquisitionDate = *update.AcquisitionDate
	}
	if update.AcquisitionPrice != nil {
		camera.AcquisitionPrice = update.AcquisitionPrice
	}
	if update.EstimatedValue != nil {
		camera.EstimatedValue = update.EstimatedValue
	}
	if update.Images != nil {
		camera.Images = update.Images
	}

	return s.repo.Update(camera)
}

// DeleteCamera removes a camera by ID.
func (s *CameraService) DeleteCamera(id string) error {
	return s.repo.Delete(id)
}

// AddImage stores an uploaded image under the image directory and
// appends its served URL to the camera's image list.
func (s *CameraService) AddImage(id, filename string, data io.Reader) (models.Camera, error) {
	camera, err := s.repo.GetByID(id)
	if err != nil {
		return models.Camera{}, err
	}

	// Strip any client-supplied path components. Base maps "" to "."
	// and leaves ".." and "/" alone, none of which name a file.
	filename = filepath.Base(filename)
	if filename == "." || filename == ".." || filename == "/" {
		return models.Camera{}, apperrors.Validation("invalid image filename")
	}

	dir := filepath.Join(s.imagePath, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.Camera{}, apperrors.Database("failed to store image", err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return models.Camera{}, apperrors.Database("failed to store image", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		return models.Camera{}, apperrors.Database("failed to store image", err)
	}

	camera.Images = append(camera.Images, fmt.Sprintf("/static/images/%s/%s", id, filename))
	return s.repo.Update(camera)
}

// StatsByBrand returns camera counts grouped by brand.
func (s *CameraService) StatsByBrand() ([]models.BrandStat, error) {
	return s.repo.StatsByBrand()
}

// StatsByType returns camera counts grouped by camera type.
func (s *CameraService) StatsByType() ([]models.TypeStat, error) {
	return s.repo.StatsByType()
}

// StatsByDecade returns camera counts grouped by decade of manufacture.
func (s *CameraService) StatsByDecade() ([]models.DecadeStat, error) {
	return s.repo.StatsByDecade()
}

// TotalValue returns the summed estimated value of the collection.
func (s *CameraService) TotalValue() (models.ValueStat, error) {
	total, err := s.repo.TotalValue()
	if err != nil {
		return models.ValueStat{}, err
	}
	return models.ValueStat{TotalValue: total}, nil
}

// ValuationHistory returns recorded valuation snapshots, newest first.
func (s *CameraService) ValuationHistory(limit int) ([]models.ValuationPoint, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.repo.ValuationHistory(limit)
}
