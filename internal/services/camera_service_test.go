package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/models"
	"github.com/lenskeep/camvault-be/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera() models.Camera {
	value := 450.0
	return models.Camera{
		Brand:            "Nikon",
		Model:            "F3",
		YearManufactured: 1980,
		Type:             "SLR",
		FilmFormat:       "35mm",
		Condition:        "excellent",
		EstimatedValue:   &value,
	}
}

func TestListCamerasPagination(t *testing.T) {
	repo := newFakeCameraRepo()
	svc := NewCameraService(repo, t.TempDir())

	for i := 0; i < 25; i++ {
		_, err := svc.CreateCamera(testCamera())
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		skip      int
		limit     int
		wantPage  int
		wantPages int
		wantSize  int
	}{
		{name: "first page", skip: 0, limit: 10, wantPage: 1, wantPages: 3, wantSize: 10},
		{name: "middle page", skip: 10, limit: 10, wantPage: 2, wantPages: 3, wantSize: 10},
		{name: "last partial page", skip: 20, limit: 10, wantPage: 3, wantPages: 3, wantSize: 10},
		{name: "zero limit defaults", skip: 0, limit: 0, wantPage: 1, wantPages: 3, wantSize: 10},
		{name: "negative skip clamps", skip: -5, limit: 10, wantPage: 1, wantPages: 3, wantSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListCameras(repository.CameraFilter{}, tt.skip, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, 25, list.Total)
			assert.Equal(t, tt.wantPage, list.Page)
			assert.Equal(t, tt.wantPages, list.Pages)
			assert.Equal(t, tt.wantSize, list.Size)
		})
	}
}

func TestListCamerasEmpty(t *testing.T) {
	svc := NewCameraService(newFakeCameraRepo(), t.TempDir())

	list, err := svc.ListCameras(repository.CameraFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 1, list.Pages)
	assert.Empty(t, list.Items)
}

func TestListCamerasForwardsFilter(t *testing.T) {
	repo := newFakeCameraRepo()
	svc := NewCameraService(repo, t.TempDir())

	filter := repository.CameraFilter{Brand: "Leica", YearMin: 1950, YearMax: 1959}
	_, err := svc.ListCameras(filter, 5, 20)
	require.NoError(t, err)

	assert.Equal(t, filter, repo.lastFilter)
	assert.Equal(t, 5, repo.lastSkip)
	assert.Equal(t, 20, repo.lastLimit)
}

func TestUpdateCameraMergesFields(t *testing.T) {
	repo := newFakeCameraRepo()
	svc := NewCameraService(repo, t.TempDir())

	created, err := svc.CreateCamera(testCamera())
	require.NoError(t, err)

	condition := "good"
	newValue := 300.0
	updated, err := svc.UpdateCamera(created.ID, CameraUpdate{
		Condition:      &condition,
		EstimatedValue: &newValue,
	})
	require.NoError(t, err)

	assert.Equal(t, "good", updated.Condition)
	require.NotNil(t, updated.EstimatedValue)
	assert.Equal(t, 300.0, *updated.EstimatedValue)
	// Untouched fields survive the merge.
	assert.Equal(t, "Nikon", updated.Brand)
	assert.Equal(t, 1980, updated.YearManufactured)
}

func TestUpdateCameraNotFound(t *testing.T) {
	svc := NewCameraService(newFakeCameraRepo(), t.TempDir())

	brand := "Canon"
	_, err := svc.UpdateCamera("missing", CameraUpdate{Brand: &brand})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteCamera(t *testing.T) {
	repo := newFakeCameraRepo()
	svc := NewCameraService(repo, t.TempDir())

	created, err := svc.CreateCamera(testCamera())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCamera(created.ID))

	_, err = svc.GetCamera(created.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(svc.DeleteCamera(created.ID)))
}

func TestAddImage(t *testing.T) {
	repo := newFakeCameraRepo()
	dir := t.TempDir()
	svc := NewCameraService(repo, dir)

	created, err := svc.CreateCamera(testCamera())
	require.NoError(t, err)

	updated, err := svc.AddImage(created.ID, "front.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, "/static/images/"+created.ID+"/front.jpg", updated.Images[0])

	data, err := os.ReadFile(filepath.Join(dir, created.ID, "front.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestAddImageStripsPath(t *testing.T) {
	repo := newFakeCameraRepo()
	dir := t.TempDir()
	svc := NewCameraService(repo, dir)

	created, err := svc.CreateCamera(testCamera())
	require.NoError(t, err)

	updated, err := svc.AddImage(created.ID, "../../evil.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, "/static/images/"+created.ID+"/evil.jpg", updated.Images[0])
	_, err = os.Stat(filepath.Join(dir, created.ID, "evil.jpg"))
	assert.NoError(t, err)
}

func TestAddImageRejectsEmptyFilename(t *testing.T) {
	repo := newFakeCameraRepo()
	svc := NewCameraService(repo, t.TempDir())

	created, err := svc.CreateCamera(testCamera())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "/"} {
		_, err := svc.AddImage(created.ID, name, strings.NewReader("x"))
		require.Error(t, err, "filename %q", name)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestTotalValue(t *testing.T) {
	repo := newFakeCameraRepo()
	svc := NewCameraService(repo, t.TempDir())

	_, err := svc.CreateCamera(testCamera())
	require.NoError(t, err)
	noValue := testCamera()
	noValue.EstimatedValue = nil
	_, err = svc.CreateCamera(noValue)
	require.NoError(t, err)

	stat, err := svc.TotalValue()
	require.NoError(t, err)
	assert.Equal(t, 450.0, stat.TotalValue)
}
