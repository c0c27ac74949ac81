package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/offday/internal/migration"
	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "offday.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testCatalog(name string) models.Catalog {
	return models.Catalog{
		Name: name,
		Courses: []models.Course{
			{ID: "Math", Groups: []models.Group{
				{ID: "G1", Slots: []models.TimeSlot{{Day: models.Sunday, Start: 480, End: 600}}},
				{ID: "G2", Slots: []models.TimeSlot{{Day: models.Monday, Start: 480, End: 600}}},
			}},
			{ID: "Physics Lab", Groups: []models.Group{
				{ID: "G1", Slots: []models.TimeSlot{
					{Day: models.Sunday, Start: 600, End: 720},
					{Day: models.Wednesday, Start: 780, End: 870},
				}},
				{ID: "G2", Placeholder: true},
			}},
		},
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "offday.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := store.SaveCatalog(testCatalog("fall")); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetCatalog("fall")
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if diff := cmp.Diff(testCatalog("fall"), got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
	if reopened.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", reopened.GetConfigPath(), path)
	}
}

func TestInit_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
}

func TestSaveAndGetCatalog(t *testing.T) {
	store := setupTestStore(t)

	info, err := store.SaveCatalog(testCatalog("fall"))
	if err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	if info.ID == "" || info.Name != "fall" || info.Courses != 2 {
		t.Errorf("unexpected info %+v", info)
	}

	got, err := store.GetCatalog("fall")
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if diff := cmp.Diff(testCatalog("fall"), got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveCatalog_EmptyName(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.SaveCatalog(testCatalog("")); err == nil {
		t.Error("expected error for unnamed catalog")
	}
}

func TestSaveCatalog_ReplacesExisting(t *testing.T) {
	store := setupTestStore(t)
	first, err := store.SaveCatalog(testCatalog("fall"))
	if err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	smaller := models.Catalog{Name: "fall", Courses: []models.Course{
		{ID: "Chemistry", Groups: []models.Group{
			{ID: "G1", Slots: []models.TimeSlot{{Day: models.Thursday, Start: 540, End: 660}}},
		}},
	}}
	second, err := store.SaveCatalog(smaller)
	if err != nil {
		t.Fatalf("second SaveCatalog failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("replacing a catalog changed its ID: %s -> %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("replacing a catalog changed created_at: %v -> %v", first.CreatedAt, second.CreatedAt)
	}

	got, err := store.GetCatalog("fall")
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if diff := cmp.Diff(smaller, got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCatalog_NotFound(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.GetCatalog("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCatalog() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAndRestoreCatalog(t *testing.T) {
	store := setupTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if _, err := store.SaveCatalog(testCatalog("fall")); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	if _, err := store.SaveCatalog(testCatalog("spring")); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	if err := store.DeleteCatalog("fall"); err != nil {
		t.Fatalf("DeleteCatalog failed: %v", err)
	}
	if err := store.DeleteCatalog("fall"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteCatalog error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetCatalog("fall"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCatalog after delete error = %v, want ErrNotFound", err)
	}

	active, err := store.ListCatalogs(false)
	if err != nil {
		t.Fatalf("ListCatalogs failed: %v", err)
	}
	if len(active) != 1 || active[0].Name != "spring" {
		t.Errorf("active catalogs = %+v", active)
	}

	all, err := store.ListCatalogs(true)
	if err != nil {
		t.Fatalf("ListCatalogs(true) failed: %v", err)
	}
	if len(all) != 2 || all[0].Name != "fall" || all[0].DeletedAt == nil {
		t.Fatalf("all catalogs = %+v", all)
	}
	if !all[0].DeletedAt.Equal(fixed) || all[0].Courses != 2 {
		t.Errorf("deleted catalog info = %+v", all[0])
	}

	if err := store.RestoreCatalog("fall"); err != nil {
		t.Fatalf("RestoreCatalog failed: %v", err)
	}
	if err := store.RestoreCatalog("fall"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second RestoreCatalog error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetCatalog("fall"); err != nil {
		t.Errorf("GetCatalog after restore failed: %v", err)
	}
}

func TestSaveCatalog_RevivesDeleted(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.SaveCatalog(testCatalog("fall")); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	if err := store.DeleteCatalog("fall"); err != nil {
		t.Fatalf("DeleteCatalog failed: %v", err)
	}
	if _, err := store.SaveCatalog(testCatalog("fall")); err != nil {
		t.Fatalf("SaveCatalog over deleted failed: %v", err)
	}
	if _, err := store.GetCatalog("fall"); err != nil {
		t.Errorf("GetCatalog after revive failed: %v", err)
	}
}

func TestLoad_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offday.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("failed to bump schema version: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	defer reopened.Close()
	if err := reopened.Load(); !errors.Is(err, migration.ErrSchemaTooNew) {
		t.Errorf("Load() error = %v, want ErrSchemaTooNew", err)
	}
}

func TestSchemaVersion(t *testing.T) {
	unopened := NewStore(filepath.Join(t.TempDir(), "offday.db"))
	if _, _, err := unopened.SchemaVersion(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("SchemaVersion() before Init error = %v, want ErrNotInitialized", err)
	}

	store := setupTestStore(t)
	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("SchemaVersion() = %d, %d; want equal and at least 1", current, latest)
	}
}
