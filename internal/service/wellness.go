package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/types"
)

const defaultEntryLimit = 100

// WellnessService owns categories, daily scores and the statistics derived
// from them.
type WellnessService struct {
	db *gorm.DB
}

func NewWellnessService(db *gorm.DB) *WellnessService {
	return &WellnessService{db: db}
}

// ListCategories returns the user's active categories ordered by
// order_index.
func (s *WellnessService) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.WellnessCategory, error) {
	categories := []models.WellnessCategory{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("order_index asc").
		Find(&categories).Error
	return categories, err
}

// CreateCategory appends a new category after the user's existing ones.
func (s *WellnessService) CreateCategory(ctx context.Context, userID uuid.UUID, req *types.CreateCategoryRequest) (*models.WellnessCategory, error) {
	if req.Name == "" {
		return nil, NewValidationError("name is required")
	}
	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	icon := req.Icon
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}

	category := models.WellnessCategory{
		UserID:   userID,
		Name:     req.Name,
		Color:    color,
		Icon:     icon,
		IsActive: true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxIndex *int
		if err := tx.Model(&models.WellnessCategory{}).
			Where("user_id = ?", userID).
			Select("max(order_index)").
			Scan(&maxIndex).Error; err != nil {
			return err
		}
		category.OrderIndex = 0
		if maxIndex != nil {
			category.OrderIndex = *maxIndex + 1
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies the non-nil fields of req to an active category.
func (s *WellnessService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req *types.UpdateCategoryRequest) (*models.WellnessCategory, error) {
	var category models.WellnessCategory
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", categoryID, userID, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewValidationError("name cannot be empty")
		}
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.OrderIndex != nil {
		category.OrderIndex = *req.OrderIndex
	}
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory soft-deletes a category. Entries referencing it are kept.
func (s *WellnessService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.WellnessCategory{}).
		Where("id = ? AND user_id = ? AND is_active = ?", categoryID, userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertEntry records a score for (category, date). A second write for the
// same pair updates the existing row; the bool reports whether a new row
// was created.
func (s *WellnessService) UpsertEntry(ctx context.Context, userID uuid.UUID, req *types.UpsertEntryRequest) (*models.WellnessEntry, bool, error) {
	if req.Score == nil || *req.Score < 1 || *req.Score > 10 {
		return nil, false, NewValidationError("score must be an integer between 1 and 10")
	}
	entryDate, err := types.ParseDate(req.EntryDate)
	if err != nil {
		return nil, false, NewValidationError("invalid entry_date format, expected YYYY-MM-DD")
	}

	var category models.WellnessCategory
	err = s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", req.CategoryID, userID, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var entry models.WellnessEntry
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND entry_date = ?", userID, req.CategoryID, entryDate).
		First(&entry).Error
	switch {
	case err == nil:
		entry.Score = *req.Score
		entry.Note = req.Note
		if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
			return nil, false, err
		}
		return &entry, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.WellnessEntry{
			UserID:     userID,
			CategoryID: req.CategoryID,
			Score:      *req.Score,
			Note:       req.Note,
			EntryDate:  entryDate,
		}
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return nil, false, err
		}
		return &entry, true, nil
	default:
		return nil, false, err
	}
}

// UpdateEntry modifies an existing entry in place by ID.
func (s *WellnessService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.WellnessEntry, error) {
	var entry models.WellnessEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			return nil, NewValidationError("score must be an integer between 1 and 10")
		}
		entry.Score = *req.Score
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes an entry permanently.
func (s *WellnessService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.WellnessEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EntryFilter narrows ListEntries. Nil fields are ignored.
type EntryFilter struct {
	CategoryID *uuid.UUID
	StartDate  *types.Date
	EndDate    *types.Date
	Limit      int
}

// ListEntries returns entries newest-first, capped at 100 by default.
func (s *WellnessService) ListEntries(ctx context.Context, userID uuid.UUID, filter EntryFilter) ([]models.WellnessEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEntryLimit
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("entry_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("entry_date <= ?", *filter.EndDate)
	}

	entries := []models.WellnessEntry{}
	err := query.Order("entry_date desc, created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// CategoryEntry pairs a category with its entry for one date; Entry is nil
// when nothing was recorded.
type CategoryEntry struct {
	Category models.WellnessCategory `json:"category"`
	Entry    *models.WellnessEntry   `json:"entry"`
}

// TodaySnapshot returns every active category with today's entry, if any.
func (s *WellnessService) TodaySnapshot(ctx context.Context, userID uuid.UUID) ([]CategoryEntry, error) {
	categories, err := s.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := types.Today()
	entries := []models.WellnessEntry{}
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, today).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	byCategory := make(map[uuid.UUID]*models.WellnessEntry, len(entries))
	for i := range entries {
		byCategory[entries[i].CategoryID] = &entries[i]
	}

	snapshot := make([]CategoryEntry, 0, len(categories))
	for _, category := range categories {
		snapshot = append(snapshot, CategoryEntry{
			Category: category,
			Entry:    byCategory[category.ID],
		})
	}
	return snapshot, nil
}

// StatPoint is one dated score inside a category's statistics window.
type StatPoint struct {
	Date  types.Date `json:"date"`
	Score int        `json:"score"`
	Note  string     `json:"note"`
}

// CategoryStats aggregates one category over the requested window.
type CategoryStats struct {
	CategoryID   uuid.UUID   `json:"category_id"`
	CategoryName string      `json:"category_name"`
	Entries      []StatPoint `json:"entries"`
	AverageScore float64     `json:"average_score"`
	Trend        string      `json:"trend"`
}

// Stats aggregates the last `days` days of entries per category. An
// optional categoryID restricts the result to one category.
func (s *WellnessService) Stats(ctx context.Context, userID uuid.UUID, days int, categoryID *uuid.UUID) ([]CategoryStats, error) {
	if days <= 0 {
		days = 30
	}
	today := types.Today()
	startDate := today.AddDays(-days)

	query := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, startDate, today)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	entries := []models.WellnessEntry{}
	if err := query.Order("entry_date asc, created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	categories := []models.WellnessCategory{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	// group in first-encounter order over the date-ascending scan
	index := map[uuid.UUID]int{}
	stats := []CategoryStats{}
	scores := [][]int{}
	for _, entry := range entries {
		i, ok := index[entry.CategoryID]
		if !ok {
			i = len(stats)
			index[entry.CategoryID] = i
			stats = append(stats, CategoryStats{
				CategoryID:   entry.CategoryID,
				CategoryName: names[entry.CategoryID],
				Entries:      []StatPoint{},
			})
			scores = append(scores, nil)
		}
		stats[i].Entries = append(stats[i].Entries, StatPoint{
			Date:  entry.EntryDate,
			Score: entry.Score,
			Note:  entry.Note,
		})
		scores[i] = append(scores[i], entry.Score)
	}
	for i := range stats {
		stats[i].AverageScore = round1(meanInt(scores[i]))
		stats[i].Trend = classifyTrend(scores[i])
	}
	return stats, nil
}

// classifyTrend compares the averages of the older and newer halves of a
// date-ordered score series. Fewer than 4 points is always "stable", as is
// any shift within the ±0.5 dead zone.
func classifyTrend(scores []int) string {
	if len(scores) < 4 {
		return "stable"
	}
	mid := len(scores) / 2
	diff := meanInt(scores[mid:]) - meanInt(scores[:mid])
	switch {
	case diff > 0.5:
		return "improving"
	case diff < -0.5:
		return "declining"
	default:
		return "stable"
	}
}

func meanInt(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
