package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/testhelpers"
	"github.com/kolo-pohody/backend/internal/types"
)

func setupWellnessTest(t *testing.T) (*gorm.DB, *service.WellnessService, *models.User) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")
	user, err := authSvc.ResolveOrCreateUser(context.Background(), "w@example.com", "W", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)
	return db, service.NewWellnessService(db), user
}

func firstCategory(t *testing.T, db *gorm.DB, userID uuid.UUID) models.WellnessCategory {
	t.Helper()
	var category models.WellnessCategory
	require.NoError(t, db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("order_index asc").First(&category).Error)
	return category
}

func intPtr(v int) *int { return &v }

func TestCreateCategoryAppendsOrderIndex(t *testing.T) {
	_, svc, user := setupWellnessTest(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, user.ID, &types.CreateCategoryRequest{Name: "Spánek"})
	require.NoError(t, err)
	// six defaults occupy 0..5
	assert.Equal(t, 6, category.OrderIndex)
	assert.Equal(t, models.DefaultCategoryColor, category.Color)
	assert.Equal(t, models.DefaultCategoryIcon, category.Icon)
	assert.True(t, category.IsActive)

	second, err := svc.CreateCategory(ctx, user.ID, &types.CreateCategoryRequest{Name: "Finance", Color: "#123456", Icon: "coins"})
	require.NoError(t, err)
	assert.Equal(t, 7, second.OrderIndex)
	assert.Equal(t, "#123456", second.Color)
}

func TestDeleteCategorySoftDeletes(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	require.NoError(t, svc.DeleteCategory(ctx, user.ID, category.ID))

	categories, err := svc.ListCategories(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, categories, 5)
	for _, c := range categories {
		assert.NotEqual(t, category.ID, c.ID)
	}

	// the row survives with is_active=false
	var reloaded models.WellnessCategory
	require.NoError(t, db.First(&reloaded, "id = ?", category.ID).Error)
	assert.False(t, reloaded.IsActive)

	// a second delete finds nothing
	assert.ErrorIs(t, svc.DeleteCategory(ctx, user.ID, category.ID), service.ErrNotFound)
}

func TestUpdateCategoryPartial(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	name := "Tělo a pohyb"
	updated, err := svc.UpdateCategory(ctx, user.ID, category.ID, &types.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, category.Color, updated.Color)

	_, err = svc.UpdateCategory(ctx, user.ID, uuid.New(), &types.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpsertEntryCreatesThenUpdates(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	req := &types.UpsertEntryRequest{
		CategoryID: category.ID,
		Score:      intPtr(7),
		EntryDate:  "2026-08-30",
		Note:       "dobrý den",
	}
	entry, created, err := svc.UpsertEntry(ctx, user.ID, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 7, entry.Score)
	assert.Equal(t, "2026-08-30", entry.EntryDate.String())

	req.Score = intPtr(4)
	req.Note = "přehodnoceno"
	updated, created, err := svc.UpsertEntry(ctx, user.ID, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, 4, updated.Score)
	assert.Equal(t, "přehodnoceno", updated.Note)

	var count int64
	require.NoError(t, db.Model(&models.WellnessEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertEntryValidation(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(11), EntryDate: "2026-08-30",
	})
	assert.True(t, service.IsValidation(err))

	_, _, err = svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(0), EntryDate: "2026-08-30",
	})
	assert.True(t, service.IsValidation(err))

	_, _, err = svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(5), EntryDate: "30.08.2026",
	})
	assert.True(t, service.IsValidation(err))

	_, _, err = svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: uuid.New(), Score: intPtr(5), EntryDate: "2026-08-30",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpsertEntryRejectedOnInactiveCategory(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)
	require.NoError(t, svc.DeleteCategory(ctx, user.ID, category.ID))

	// a soft-deleted category is gone for new writes
	_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(6), EntryDate: "2026-08-29",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListEntriesFilters(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	for _, day := range []string{"2026-08-25", "2026-08-26", "2026-08-27"} {
		_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
			CategoryID: category.ID, Score: intPtr(5), EntryDate: day,
		})
		require.NoError(t, err)
	}

	start, _ := types.ParseDate("2026-08-26")
	entries, err := svc.ListEntries(ctx, user.ID, service.EntryFilter{StartDate: &start})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, "2026-08-27", entries[0].EntryDate.String())
	assert.Equal(t, "2026-08-26", entries[1].EntryDate.String())

	entries, err = svc.ListEntries(ctx, user.ID, service.EntryFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	other := uuid.New()
	entries, err = svc.ListEntries(ctx, user.ID, service.EntryFilter{CategoryID: &other})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTodaySnapshot(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(8), EntryDate: types.Today().String(),
	})
	require.NoError(t, err)

	snapshot, err := svc.TodaySnapshot(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, snapshot, 6)
	assert.Equal(t, category.ID, snapshot[0].Category.ID)
	require.NotNil(t, snapshot[0].Entry)
	assert.Equal(t, 8, snapshot[0].Entry.Score)
	for _, item := range snapshot[1:] {
		assert.Nil(t, item.Entry)
	}
}

func TestStatsAveragesAndTrend(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	// older half 3,3 newer half 8,8 -> improving
	scores := []int{3, 3, 8, 8}
	for i, score := range scores {
		_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
			CategoryID: category.ID,
			Score:      intPtr(score),
			EntryDate:  types.Today().AddDays(i - len(scores)).String(),
		})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, user.ID, 30, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, category.ID, stats[0].CategoryID)
	assert.Equal(t, category.Name, stats[0].CategoryName)
	assert.Len(t, stats[0].Entries, 4)
	assert.Equal(t, 5.5, stats[0].AverageScore)
	assert.Equal(t, "improving", stats[0].Trend)
}

func TestStatsCategoryFilterAndWindow(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	// one entry inside the window, one far in the past, one in the future
	_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(9), EntryDate: types.Today().String(),
	})
	require.NoError(t, err)
	_, _, err = svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(1), EntryDate: types.Today().AddDays(-90).String(),
	})
	require.NoError(t, err)
	_, _, err = svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(10), EntryDate: types.Today().AddDays(10).String(),
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, user.ID, 7, &category.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Len(t, stats[0].Entries, 1)
	assert.Equal(t, 9.0, stats[0].AverageScore)
	assert.Equal(t, "stable", stats[0].Trend)

	other := uuid.New()
	stats, err = svc.Stats(ctx, user.ID, 7, &other)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestStatsExcludesFutureEntries(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	_, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(9), EntryDate: types.Today().AddDays(10).String(),
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, user.ID, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	entry, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(5), EntryDate: "2026-08-30",
	})
	require.NoError(t, err)

	note := "upraveno"
	updated, err := svc.UpdateEntry(ctx, user.ID, entry.ID, &types.UpdateEntryRequest{Score: intPtr(9), Note: &note})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Score)
	assert.Equal(t, "upraveno", updated.Note)

	_, err = svc.UpdateEntry(ctx, user.ID, entry.ID, &types.UpdateEntryRequest{Score: intPtr(12)})
	assert.True(t, service.IsValidation(err))

	require.NoError(t, svc.DeleteEntry(ctx, user.ID, entry.ID))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, user.ID, entry.ID), service.ErrNotFound)
}

func TestEntryOwnershipIsolation(t *testing.T) {
	db, svc, user := setupWellnessTest(t)
	ctx := context.Background()
	category := firstCategory(t, db, user.ID)

	authSvc := service.NewAuthService(db, "test-secret")
	other, err := authSvc.ResolveOrCreateUser(ctx, "other@example.com", "Other", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)

	entry, _, err := svc.UpsertEntry(ctx, user.ID, &types.UpsertEntryRequest{
		CategoryID: category.ID, Score: intPtr(5), EntryDate: "2026-08-30",
	})
	require.NoError(t, err)

	_, err = svc.UpdateEntry(ctx, other.ID, entry.ID, &types.UpdateEntryRequest{Score: intPtr(1)})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteEntry(ctx, other.ID, entry.ID), service.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, other.ID, category.ID), service.ErrNotFound)
}
