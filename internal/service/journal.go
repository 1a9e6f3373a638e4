package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/types"
)

const defaultJournalLimit = 50

// JournalService owns free-text journal entries and their aggregation.
type JournalService struct {
	db *gorm.DB
}

func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{db: db}
}

// Create stores a new journal entry. Entries are private unless the caller
// says otherwise; an omitted entry_date means today.
func (s *JournalService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateJournalEntryRequest) (*models.JournalEntry, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, NewValidationError("content is required")
	}
	entryDate := types.Today()
	if req.EntryDate != "" {
		parsed, err := types.ParseDate(req.EntryDate)
		if err != nil {
			return nil, NewValidationError("invalid entry_date format, expected YYYY-MM-DD")
		}
		entryDate = parsed
	}
	isPrivate := true
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}

	entry := models.JournalEntry{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		EntryDate: entryDate,
		IsPrivate: isPrivate,
		Tags:      models.NewTags(req.Tags),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get loads a single entry by ID.
func (s *JournalService) Get(ctx context.Context, userID, entryID uuid.UUID) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Update applies the non-nil fields of req to an entry.
func (s *JournalService) Update(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateJournalEntryRequest) (*models.JournalEntry, error) {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, NewValidationError("content cannot be empty")
		}
		entry.Content = *req.Content
	}
	if req.EntryDate != nil {
		parsed, err := types.ParseDate(*req.EntryDate)
		if err != nil {
			return nil, NewValidationError("invalid entry_date format, expected YYYY-MM-DD")
		}
		entry.EntryDate = parsed
	}
	if req.IsPrivate != nil {
		entry.IsPrivate = *req.IsPrivate
	}
	if req.Tags != nil {
		entry.Tags = models.NewTags(*req.Tags)
	}
	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry permanently.
func (s *JournalService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.JournalEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPrivacy sets the privacy flag to an explicit value. There is no
// toggle; callers always state the target state.
func (s *JournalService) SetPrivacy(ctx context.Context, userID, entryID uuid.UUID, isPrivate bool) (*models.JournalEntry, error) {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	entry.IsPrivate = isPrivate
	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// JournalFilter narrows List. Nil date bounds are ignored.
type JournalFilter struct {
	StartDate      *types.Date
	EndDate        *types.Date
	IncludePrivate bool
	Search         string
	Limit          int
}

// List returns entries newest-first by entry_date, then by creation time.
// Search matches title, content and tags case-insensitively.
func (s *JournalService) List(ctx context.Context, userID uuid.UUID, filter JournalFilter) ([]models.JournalEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.IncludePrivate {
		query = query.Where("is_private = ?", false)
	}
	if filter.StartDate != nil {
		query = query.Where("entry_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("entry_date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"lower(title) LIKE ? OR lower(content) LIKE ? OR lower(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	entries := []models.JournalEntry{}
	err := query.Order("entry_date desc, created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// TodayEntries returns all of today's entries, private included.
func (s *JournalService) TodayEntries(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, types.Today()).
		Order("created_at desc").
		Find(&entries).Error
	return entries, err
}

// TagCount is one tag with its usage count inside the statistics window.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// StatsDateRange describes the window a statistics result covers.
type StatsDateRange struct {
	StartDate types.Date `json:"start_date"`
	EndDate   types.Date `json:"end_date"`
	Days      int        `json:"days"`
}

// JournalStats aggregates journal activity over a window.
type JournalStats struct {
	TotalEntries         int            `json:"total_entries"`
	PrivateEntries       int            `json:"private_entries"`
	PublicEntries        int            `json:"public_entries"`
	EntriesByDate        map[string]int `json:"entries_by_date"`
	PopularTags          []TagCount     `json:"popular_tags"`
	AverageEntriesPerDay float64        `json:"average_entries_per_day"`
	DateRange            StatsDateRange `json:"date_range"`
}

// Stats aggregates the last `days` days of entries: counts, per-date
// histogram and the ten most used tags. A zero-day window covers today
// only and reports an average of 0.
func (s *JournalService) Stats(ctx context.Context, userID uuid.UUID, days int) (*JournalStats, error) {
	if days < 0 {
		days = 0
	}
	endDate := types.Today()
	startDate := endDate.AddDays(-days)

	entries := []models.JournalEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, startDate, endDate).
		Order("entry_date asc, created_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	stats := &JournalStats{
		EntriesByDate: map[string]int{},
		PopularTags:   []TagCount{},
		DateRange:     StatsDateRange{StartDate: startDate, EndDate: endDate, Days: days},
	}

	tagCounts := map[string]int{}
	tagFirstSeen := map[string]int{}
	for _, entry := range entries {
		stats.TotalEntries++
		if entry.IsPrivate {
			stats.PrivateEntries++
		} else {
			stats.PublicEntries++
		}
		stats.EntriesByDate[entry.EntryDate.String()]++
		tags, _ := entry.Tags.List()
		for _, tag := range tags {
			if _, seen := tagFirstSeen[tag]; !seen {
				tagFirstSeen[tag] = len(tagFirstSeen)
			}
			tagCounts[tag]++
		}
	}

	ordered := make([]string, len(tagFirstSeen))
	for tag, i := range tagFirstSeen {
		ordered[i] = tag
	}
	// stable sort keeps first-encounter order between equal counts
	sort.SliceStable(ordered, func(i, j int) bool {
		return tagCounts[ordered[i]] > tagCounts[ordered[j]]
	})
	if len(ordered) > 10 {
		ordered = ordered[:10]
	}
	for _, tag := range ordered {
		stats.PopularTags = append(stats.PopularTags, TagCount{Tag: tag, Count: tagCounts[tag]})
	}

	if days > 0 {
		stats.AverageEntriesPerDay = round1(float64(stats.TotalEntries) / float64(days))
	}
	return stats, nil
}

// Tags returns every distinct tag the user has ever used, sorted
// alphabetically.
func (s *JournalService) Tags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	entries := []models.JournalEntry{}
	err := s.db.WithContext(ctx).
		Select("tags").
		Where("user_id = ?", userID).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	distinct := []string{}
	for _, entry := range entries {
		tags, _ := entry.Tags.List()
		for _, tag := range tags {
			if !seen[tag] {
				seen[tag] = true
				distinct = append(distinct, tag)
			}
		}
	}
	sort.Strings(distinct)
	return distinct, nil
}
