package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/models"
)

// CameraFilter narrows camera listings. Zero values mean "no filter".
type CameraFilter struct {
	Brand      string
	Type       string
	FilmFormat string
	Condition  string
	YearMin    int
	YearMax    int
}

// CameraRepositoryProvider defines the interface for camera storage.
type CameraRepositoryProvider interface {
	Create(camera models.Camera) (models.Camera, error)
	GetByID(id string) (models.Camera, error)
	List(filter CameraFilter, skip, limit int) ([]models.Camera, error)
	Count(filter CameraFilter) (int, error)
	Update(camera models.Camera) (models.Camera, error)
	Delete(id string) error
	StatsByBrand() ([]models.BrandStat, error)
	StatsByType() ([]models.TypeStat, error)
	StatsByDecade() ([]models.DecadeStat, error)
	TotalValue() (float64, error)
	InsertValuationSnapshot(totalValue float64, cameraCount int) error
	ValuationHistory(limit int) ([]models.ValuationPoint, error)
}

// CameraRepository persists cameras in SQLite. List-valued fields are
// stored as JSON text columns.
type CameraRepository struct {
	db *sql.DB
}

// NewCameraRepository creates a new CameraRepository.
func NewCameraRepository(db *sql.DB) *CameraRepository {
	return &CameraRepository{db: db}
}

const cameraColumns = `id, brand, model, year_manufactured, type, film_format, condition,
	notes, acquisition_date, acquisition_price, estimated_value,
	special_features_json, images_json, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCamera(row rowScanner) (models.Camera, error) {
	var (
		c            models.Camera
		notes        sql.NullString
		acqDate      sql.NullString
		featuresJSON string
		imagesJSON   string
	)
	err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.YearManufactured, &c.Type, &c.FilmFormat,
		&c.Condition, &notes, &acqDate, &c.AcquisitionPrice, &c.EstimatedValue,
		&featuresJSON, &imagesJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Camera{}, err
	}
	c.Notes = notes.String
	c.AcquisitionDate = acqDate.String
	if err := json.Unmarshal([]byte(featuresJSON), &c.SpecialFeatures); err != nil {
		c.SpecialFeatures = []string{}
	}
	if err := json.Unmarshal([]byte(imagesJSON), &c.Images); err != nil {
		c.Images = []string{}
	}
	return c, nil
}

func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// Create inserts a new camera and returns it with its assigned ID.
func (r *CameraRepository) Create(camera models.Camera) (models.Camera, error) {
	if camera.ID == "" {
		camera.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	camera.CreatedAt = now
	camera.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO cameras(id, brand, model, year_manufactured, type, film_format, condition,
			notes, acquisition_date, acquisition_price, estimated_value,
			special_features_json, images_json, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		camera.ID, camera.Brand, camera.Model, camera.YearManufactured, camera.Type,
		camera.FilmFormat, camera.Condition, nullable(camera.Notes), nullable(camera.AcquisitionDate),
		camera.AcquisitionPrice, camera.EstimatedValue,
		marshalList(camera.SpecialFeatures), marshalList(camera.Images),
		camera.CreatedAt, camera.UpdatedAt,
	)
	if err != nil {
		return models.Camera{}, apperrors.Database("failed to create camera", err)
	}
	if camera.SpecialFeatures == nil {
		camera.SpecialFeatures = []string{}
	}
	if camera.Images == nil {
		camera.Images = []string{}
	}
	return camera, nil
}

// GetByID retrieves a camera by ID.
func (r *CameraRepository) GetByID(id string) (models.Camera, error) {
	row := r.db.QueryRow("SELECT "+cameraColumns+" FROM cameras WHERE id = ?", id)
	camera, err := scanCamera(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Camera{}, apperrors.NotFound(fmt.Sprintf("camera with ID %s not found", id))
		}
		return models.Camera{}, apperrors.Database("failed to get camera", err)
	}
	return camera, nil
}

func (f CameraFilter) whereClause() (string, []any) {
	where := " WHERE 1=1"
	args := []any{}
	if f.Brand != "" {
		where += " AND brand = ?"
		args = append(args, f.Brand)
	}
	if f.Type != "" {
		where += " AND type = ?"
		args = append(args, f.Type)
	}
	if f.FilmFormat != "" {
		where += " AND film_format = ?"
		args = append(args, f.FilmFormat)
	}
	if f.Condition != "" {
		where += " AND condition = ?"
		args = append(args, f.Condition)
	}
	if f.YearMin != 0 {
		where += " AND year_manufactured >= ?"
		args = append(args, f.YearMin)
	}
	if f.YearMax != 0 {
		where += " AND year_manufactured <= ?"
		args = append(args, f.YearMax)
	}
	return where, args
}

// List retrieves cameras matching the filter with skip/limit paging.
func (r *CameraRepository) List(filter CameraFilter, skip, limit int) ([]models.Camera, error) {
	where, args := filter.whereClause()
	args = append(args, limit, skip)

	rows, err := r.db.Query(
		"SELECT "+cameraColumns+" FROM cameras"+where+" ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		args...,
	)
	if err != nil {
		return nil, apperrors.Database("failed to list cameras", err)
	}
	defer rows.Close()

	cameras := []models.Camera{}
	for rows.Next() {
		camera, err := scanCamera(rows)
		if err != nil {
			return nil, apperrors.Database("failed to scan camera", err)
		}
		cameras = append(cameras, camera)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Database("failed to list cameras", err)
	}
	return cameras, nil
}

// Count counts cameras matching the filter.
func (r *CameraRepository) Count(filter CameraFilter) (int, error) {
	where, args := filter.whereClause()
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM cameras"+where, args...).Scan(&total); err != nil {
		return 0, apperrors.Database("failed to count cameras", err)
	}
	return total, nil
}

// Update replaces a camera's mutable fields.
func (r *CameraRepository) Update(camera models.Camera) (models.Camera, error) {
	camera.UpdatedAt = time.Now().UTC()
	res, err := r.db.Exec(
		`UPDATE cameras SET brand = ?, model = ?, year_manufactured = ?, type = ?, film_format = ?,
			condition = ?, notes = ?, acquisition_date = ?, acquisition_price = ?, estimated_value = ?,
			special_features_json = ?, images_json = ?, updated_at = ?
		WHERE id = ?`,
		camera.Brand, camera.Model, camera.YearManufactured, camera.Type, camera.FilmFormat,
		camera.Condition, nullable(camera.Notes), nullable(camera.AcquisitionDate),
		camera.AcquisitionPrice, camera.EstimatedValue,
		marshalList(camera.SpecialFeatures), marshalList(camera.Images),
		camera.UpdatedAt, camera.ID,
	)
	if err != nil {
		return models.Camera{}, apperrors.Database("failed to update camera", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Camera{}, apperrors.NotFound(fmt.Sprintf("camera with ID %s not found", camera.ID))
	}
	return r.GetByID(camera.ID)
}

// Delete removes a camera by ID.
func (r *CameraRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM cameras WHERE id = ?", id)
	if err != nil {
		return apperrors.Database("failed to delete camera", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound(fmt.Sprintf("camera with ID %s not found", id))
	}
	return nil
}

// StatsByBrand groups camera counts by brand, most numerous first.
func (r *CameraRepository) StatsByBrand() ([]models.BrandStat, error) {
	rows, err := r.db.Query("SELECT brand, COUNT(*) AS count FROM cameras GROUP BY brand ORDER BY count DESC, brand")
	if err != nil {
		return nil, apperrors.Database("failed to get brand statistics", err)
	}
	defer rows.Close()

	stats := []models.BrandStat{}
	for rows.Next() {
		var s models.BrandStat
		if err := rows.Scan(&s.Brand, &s.Count); err != nil {
			return nil, apperrors.Database("failed to get brand statistics", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// StatsByType groups camera counts by camera type, most numerous first.
func (r *CameraRepository) StatsByType() ([]models.TypeStat, error) {
	rows, err := r.db.Query("SELECT type, COUNT(*) AS count FROM cameras GROUP BY type ORDER BY count DESC, type")
	if err != nil {
		return nil, apperrors.Database("failed to get type statistics", err)
	}
	defer rows.Close()

	stats := []models.TypeStat{}
	for rows.Next() {
		var s models.TypeStat
		if err := rows.Scan(&s.Type, &s.Count); err != nil {
			return nil, apperrors.Database("failed to get type statistics", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// StatsByDecade groups camera counts by decade of manufacture in
// ascending decade order, labeled like "1950s".
func (r *CameraRepository) StatsByDecade() ([]models.DecadeStat, error) {
	rows, err := r.db.Query(
		`SELECT (year_manufactured / 10) * 10 AS decade, COUNT(*) AS count
		FROM cameras GROUP BY decade ORDER BY decade`,
	)
	if err != nil {
		return nil, apperrors.Database("failed to get decade statistics", err)
	}
	defer rows.Close()

	stats := []models.DecadeStat{}
	for rows.Next() {
		var (
			decade int
			count  int
		)
		if err := rows.Scan(&decade, &count); err != nil {
			return nil, apperrors.Database("failed to get decade statistics", err)
		}
		stats = append(stats, models.DecadeStat{Decade: fmt.Sprintf("%ds", decade), Count: count})
	}
	return stats, rows.Err()
}

// TotalValue sums the estimated value of the collection. Cameras with
// no estimate contribute nothing.
func (r *CameraRepository) TotalValue() (float64, error) {
	var total float64
	err := r.db.QueryRow(
		"SELECT COALESCE(SUM(estimated_value), 0) FROM cameras WHERE estimated_value IS NOT NULL",
	).Scan(&total)
	if err != nil {
		return 0, apperrors.Database("failed to get total value", err)
	}
	return total, nil
}

// InsertValuationSnapshot records one point of valuation history.
func (r *CameraRepository) InsertValuationSnapshot(totalValue float64, cameraCount int) error {
	_, err := r.db.Exec(
		"INSERT INTO valuation_history(id, recorded_at, total_value, camera_count) VALUES(?, ?, ?, ?)",
		uuid.New().String(), time.Now().UTC(), totalValue, cameraCount,
	)
	if err != nil {
		return apperrors.Database("failed to record valuation snapshot", err)
	}
	return nil
}

// ValuationHistory returns the most recent snapshots, newest first.
func (r *CameraRepository) ValuationHistory(limit int) ([]models.ValuationPoint, error) {
	rows, err := r.db.Query(
		"SELECT recorded_at, total_value, camera_count FROM valuation_history ORDER BY recorded_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, apperrors.Database("failed to get valuation history", err)
	}
	defer rows.Close()

	points := []models.ValuationPoint{}
	for rows.Next() {
		var p models.ValuationPoint
		if err := rows.Scan(&p.RecordedAt, &p.TotalValue, &p.CameraCount); err != nil {
			return nil, apperrors.Database("failed to get valuation history", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
