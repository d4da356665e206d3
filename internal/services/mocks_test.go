package services

import (
	"fmt"

	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/models"
	"github.com/lenskeep/camvault-be/internal/repository"
)

// fakeUserRepo is an in-memory UserRepositoryProvider for service
// tests. It mirrors the storage layer's uniqueness guarantees.
type fakeUserRepo struct {
	users  map[string]*models.User // by ID
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(user models.User) (models.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return models.User{}, apperrors.Validation("username already registered")
		}
		if u.Email == user.Email {
			return models.User{}, apperrors.Validation("email already registered")
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	stored := user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUserRepo) Update(user models.User) (models.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return models.User{}, apperrors.NotFound("user not found")
	}
	stored := user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

// fakeCameraRepo is an in-memory CameraRepositoryProvider capturing
// the arguments camera service tests care about.
type fakeCameraRepo struct {
	cameras    map[string]models.Camera
	nextID     int
	lastFilter repository.CameraFilter
	lastSkip   int
	lastLimit  int
	snapshots  []models.ValuationPoint
}

func newFakeCameraRepo() *fakeCameraRepo {
	return &fakeCameraRepo{cameras: map[string]models.Camera{}}
}

func (r *fakeCameraRepo) Create(camera models.Camera) (models.Camera, error) {
	r.nextID++
	camera.ID = fmt.Sprintf("cam-%d", r.nextID)
	if camera.SpecialFeatures == nil {
		camera.SpecialFeatures = []string{}
	}
	if camera.Images == nil {
		camera.Images = []string{}
	}
	r.cameras[camera.ID] = camera
	return camera, nil
}

func (r *fakeCameraRepo) GetByID(id string) (models.Camera, error) {
	if c, ok := r.cameras[id]; ok {
		return c, nil
	}
	return models.Camera{}, apperrors.NotFound(fmt.Sprintf("camera with ID %s not found", id))
}

func (r *fakeCameraRepo) List(filter repository.CameraFilter, skip, limit int) ([]models.Camera, error) {
	r.lastFilter = filter
	r.lastSkip = skip
	r.lastLimit = limit

	all := []models.Camera{}
	for _, c := range r.cameras {
		all = append(all, c)
	}
	if skip >= len(all) {
		return []models.Camera{}, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (r *fakeCameraRepo) Count(filter repository.CameraFilter) (int, error) {
	return len(r.cameras), nil
}

func (r *fakeCameraRepo) Update(camera models.Camera) (models.Camera, error) {
	if _, ok := r.cameras[camera.ID]; !ok {
		return models.Camera{}, apperrors.NotFound(fmt.Sprintf("camera with ID %s not found", camera.ID))
	}
	r.cameras[camera.ID] = camera
	return camera, nil
}

func (r *fakeCameraRepo) Delete(id string) error {
	if _, ok := r.cameras[id]; !ok {
		return apperrors.NotFound(fmt.Sprintf("camera with ID %s not found", id))
	}
	delete(r.cameras, id)
	return nil
}

func (r *fakeCameraRepo) StatsByBrand() ([]models.BrandStat, error) {
	counts := map[string]int{}
	for _, c := range r.cameras {
		counts[c.Brand]++
	}
	stats := []models.BrandStat{}
	for brand, count := range counts {
		stats = append(stats, models.BrandStat{Brand: brand, Count: count})
	}
	return stats, nil
}

func (r *fakeCameraRepo) StatsByType() ([]models.TypeStat, error) {
	return []models.TypeStat{}, nil
}

func (r *fakeCameraRepo) StatsByDecade() ([]models.DecadeStat, error) {
	return []models.DecadeStat{}, nil
}

func (r *fakeCameraRepo) TotalValue() (float64, error) {
	var total float64
	for _, c := range r.cameras {
		if c.EstimatedValue != nil {
			total += *c.EstimatedValue
		}
	}
	return total, nil
}

func (r *fakeCameraRepo) InsertValuationSnapshot(totalValue float64, cameraCount int) error {
	r.snapshots = append(r.snapshots, models.ValuationPoint{TotalValue: totalValue, CameraCount: cameraCount})
	return nil
}

func (r *fakeCameraRepo) ValuationHistory(limit int) ([]models.ValuationPoint, error) {
	if limit > len(r.snapshots) {
		limit = len(r.snapshots)
	}
	return r.snapshots[:limit], nil
}
