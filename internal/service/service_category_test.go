package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/mock"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

func newTestCategorySvc(t *testing.T) (CategoryService, *mock.MockCategoryRepository, *mock.MockTransactor) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := mock.NewMockCategoryRepository(ctrl)
	tx := mock.NewMockTransactor(ctrl)

	return NewCategoryService(repo, tx, logger.Nop()), repo, tx
}

// ─────────────────────────────────────────────
// List
// ─────────────────────────────────────────────

func TestCategoryService_List(t *testing.T) {
	svc, repo, _ := newTestCategorySvc(t)
	want := []models.Category{{ID: 1, Value: "ADDRESS"}, {ID: 2, Value: "NAME"}}

	repo.EXPECT().List(gomock.Any()).Return(want, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCategoryService_List_Error(t *testing.T) {
	svc, repo, _ := newTestCategorySvc(t)

	repo.EXPECT().List(gomock.Any()).Return(nil, errStorage)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// Seed
// ─────────────────────────────────────────────

func TestCategoryService_Seed_AddKeepsExisting(t *testing.T) {
	svc, repo, tx := newTestCategorySvc(t)
	expectTransaction(tx)

	repo.EXPECT().FindByValue(gomock.Any(), "NAME").Return(models.Category{ID: 1, Value: "NAME"}, nil)
	repo.EXPECT().FindByValue(gomock.Any(), "EMAIL").Return(models.Category{}, store.ErrCategoryNotFound)
	repo.EXPECT().Create(gomock.Any(), models.Category{
		Value:           "EMAIL",
		BackgroundColor: "#00f",
		Description:     "EMAIL related personal information",
	}).Return(models.Category{ID: 2}, nil)

	result, err := svc.Seed(context.Background(), []models.CategorySeed{
		{Value: "NAME", Background: "#f00"},
		{Value: "EMAIL", Background: "#00f"},
	}, models.SeedAdd)

	require.NoError(t, err)
	assert.Equal(t, models.SeedResult{Created: 1, Updated: 0}, result)
}

func TestCategoryService_Seed_EmptyModeMeansAdd(t *testing.T) {
	svc, repo, tx := newTestCategorySvc(t)
	expectTransaction(tx)

	repo.EXPECT().FindByValue(gomock.Any(), "NAME").Return(models.Category{ID: 1}, nil)

	result, err := svc.Seed(context.Background(), []models.CategorySeed{{Value: "NAME"}}, "")
	require.NoError(t, err)
	assert.Zero(t, result.Updated)
}

func TestCategoryService_Seed_UpdateOverwrites(t *testing.T) {
	svc, repo, tx := newTestCategorySvc(t)
	expectTransaction(tx)

	repo.EXPECT().FindByValue(gomock.Any(), "NAME").Return(models.Category{ID: 1, Value: "NAME"}, nil)
	repo.EXPECT().Update(gomock.Any(), models.Category{
		Value:           "NAME",
		BackgroundColor: "#0f0",
		Description:     "Full names",
	}).Return(nil)

	result, err := svc.Seed(context.Background(), []models.CategorySeed{
		{Value: " NAME ", Background: "#0f0", Description: "Full names"},
	}, models.SeedUpdate)

	require.NoError(t, err)
	assert.Equal(t, models.SeedResult{Updated: 1}, result)
}

func TestCategoryService_Seed_ClearDeletesFirst(t *testing.T) {
	svc, repo, tx := newTestCategorySvc(t)
	expectTransaction(tx)

	gomock.InOrder(
		repo.EXPECT().DeleteAll(gomock.Any()).Return(nil),
		repo.EXPECT().FindByValue(gomock.Any(), "NAME").Return(models.Category{}, store.ErrCategoryNotFound),
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Category{ID: 7}, nil),
	)

	result, err := svc.Seed(context.Background(), []models.CategorySeed{{Value: "NAME"}}, models.SeedClear)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}

// TestCategoryService_Seed_ClearInUse checks that a registry still referenced
// by tags is reported and nothing is inserted.
func TestCategoryService_Seed_ClearInUse(t *testing.T) {
	svc, repo, tx := newTestCategorySvc(t)
	expectTransaction(tx)

	repo.EXPECT().DeleteAll(gomock.Any()).Return(store.ErrCategoryInUse)

	_, err := svc.Seed(context.Background(), []models.CategorySeed{{Value: "NAME"}}, models.SeedClear)
	assert.ErrorIs(t, err, store.ErrCategoryInUse)
}

func TestCategoryService_Seed_InvalidMode(t *testing.T) {
	svc, _, _ := newTestCategorySvc(t)

	_, err := svc.Seed(context.Background(), nil, "replace")
	assert.ErrorIs(t, err, ErrInvalidSeedMode)
}

func TestCategoryService_Seed_EmptyValue(t *testing.T) {
	svc, _, _ := newTestCategorySvc(t)

	_, err := svc.Seed(context.Background(), []models.CategorySeed{{Value: "NAME"}, {Value: " "}}, models.SeedAdd)
	require.ErrorIs(t, err, ErrInvalidSeedEntry)
	assert.Contains(t, err.Error(), "index 1")
}

// ─────────────────────────────────────────────
// Seed files
// ─────────────────────────────────────────────

func writeSeedFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeedFile_JSON(t *testing.T) {
	path := writeSeedFile(t, "tag.json", `[{"value":"NAME","background":"#f00"},{"value":"EMAIL","background":"#00f","description":"mail"}]`)

	entries, err := LoadSeedFile(path)

	require.NoError(t, err)
	assert.Equal(t, []models.CategorySeed{
		{Value: "NAME", Background: "#f00"},
		{Value: "EMAIL", Background: "#00f", Description: "mail"},
	}, entries)
}

func TestLoadSeedFile_YAML(t *testing.T) {
	path := writeSeedFile(t, "tags.yml", "- value: NAME\n  background: \"#f00\"\n- value: PHONE\n  background: \"#0f0\"\n")

	entries, err := LoadSeedFile(path)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "PHONE", entries[1].Value)
	assert.Equal(t, "#0f0", entries[1].Background)
}

func TestLoadSeedFile_UnsupportedExtension(t *testing.T) {
	path := writeSeedFile(t, "tags.csv", "NAME,#f00")

	_, err := LoadSeedFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedSeedFormat)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestDecodeSeed_MalformedJSON(t *testing.T) {
	_, err := DecodeSeed(strings.NewReader(`{"value":`), SeedFormatJSON)
	assert.ErrorIs(t, err, ErrInvalidSeedEntry)
}

func TestDecodeSeed_EmptyYAML(t *testing.T) {
	entries, err := DecodeSeed(strings.NewReader(""), SeedFormatYAML)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSeedFormatFromContentType(t *testing.T) {
	assert.Equal(t, SeedFormatYAML, SeedFormatFromContentType("application/yaml"))
	assert.Equal(t, SeedFormatYAML, SeedFormatFromContentType("text/x-yaml; charset=utf-8"))
	assert.Equal(t, SeedFormatJSON, SeedFormatFromContentType("application/json"))
	assert.Equal(t, SeedFormatJSON, SeedFormatFromContentType(""))
}
