package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/types"
)

const (
	defaultHistoryLimit = 20
	dailyCacheTTL       = 24 * time.Hour

	generatorSystemPrompt = "You are a wellness coach and mindfulness expert. Generate content in Czech language that is warm, encouraging, and practical. Keep responses concise and meaningful."
)

// TextGenerator produces free-form text for a prompt pair. *LLMService
// implements it.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Prompts fed to the generator, per inspiration type.
var inspirationPrompts = map[string][]string{
	models.InspirationDailyQuote: {
		"Generate an inspiring wellness quote about mindfulness and self-care in Czech language. Keep it short and meaningful.",
		"Create a motivational quote about finding balance in life in Czech. Make it uplifting and practical.",
		"Generate a peaceful quote about gratitude and appreciation in Czech language. Focus on daily joy.",
		"Create an inspiring quote about personal growth and wellness in Czech. Make it encouraging.",
		"Generate a calming quote about inner peace and mindfulness in Czech language.",
	},
	models.InspirationWellnessTip: {
		"Provide a practical wellness tip for improving daily well-being in Czech language. Keep it actionable and simple.",
		"Share a mindfulness technique that can be done in 5 minutes in Czech. Make it easy to follow.",
		"Give advice on how to create a peaceful morning routine in Czech language. Be specific and helpful.",
		"Suggest a simple way to reduce stress during a busy day in Czech. Make it practical.",
		"Provide a tip for better sleep hygiene in Czech language. Keep it actionable.",
	},
	models.InspirationReflectionPrompt: {
		"Create a thoughtful reflection question about personal growth in Czech language. Make it introspective.",
		"Generate a journaling prompt about gratitude and appreciation in Czech. Make it meaningful.",
		"Suggest a self-reflection question about life balance in Czech language. Make it thought-provoking.",
		"Create a prompt for evening reflection about the day's positive moments in Czech.",
		"Generate a question that encourages mindful thinking about personal values in Czech language.",
	},
	models.InspirationAffirmation: {
		"Create a positive affirmation about self-worth and confidence in Czech language. Make it empowering.",
		"Generate an affirmation about inner strength and resilience in Czech. Keep it uplifting.",
		"Create a self-love affirmation in Czech language. Make it warm and encouraging.",
		"Generate an affirmation about embracing change and growth in Czech. Make it inspiring.",
		"Create a calming affirmation about peace and serenity in Czech language.",
	},
}

// Canned content served when the generator is unavailable or fails.
var fallbackInspirations = map[string][]string{
	models.InspirationDailyQuote: {
		"Každý den je nová příležitost k růstu a objevování radosti v malých věcech.",
		"Klid v srdci je největší poklad, který si můžeme dát.",
		"Vděčnost proměňuje to, co máme, v dostatek.",
		"Malé kroky vedou k velkým změnám. Buďte trpěliví sami se sebou.",
		"Dnes je dobrý den na to, abychom byli laskaví k sobě i ostatním.",
	},
	models.InspirationWellnessTip: {
		"Začněte den třemi hlubokými nádechy a nastavte si pozitivní záměr.",
		"Udělejte si 5minutovou pauzu a věnujte se pouze svému dechu.",
		"Zapište si tři věci, za které jste dnes vděční.",
		"Protáhněte se a uvědomte si, jak se vaše tělo cítí.",
		"Vypněte telefon na hodinu a věnujte se něčemu, co vás těší.",
	},
	models.InspirationReflectionPrompt: {
		"Co mi dnes přineslo největší radost?",
		"Jak jsem dnes projevil laskavost k sobě nebo ostatním?",
		"Za co jsem dnes nejvíce vděčný?",
		"Jaký malý úspěch jsem dnes dosáhl?",
		"Co bych chtěl zítra udělat jinak nebo lépe?",
	},
	models.InspirationAffirmation: {
		"Jsem hoden lásky a respektu, včetně toho od sebe sama.",
		"Mám v sobě sílu překonat jakékoli výzvy, které přijdou.",
		"Každý den rostou a učím se něco nového o sobě.",
		"Zasloužím si klid, radost a naplnění ve svém životě.",
		"Jsem přesně tam, kde mám být na své cestě.",
	},
}

// InspirationService generates and stores per-user inspirational content.
// Both the generator and the redis client may be nil: without a generator
// content comes from the fallback pools, without redis every daily lookup
// hits the database.
type InspirationService struct {
	db        *gorm.DB
	generator TextGenerator
	redis     *redis.Client
}

func NewInspirationService(db *gorm.DB, generator TextGenerator, redisClient *redis.Client) *InspirationService {
	return &InspirationService{
		db:        db,
		generator: generator,
		redis:     redisClient,
	}
}

// Daily returns the user's canonical inspiration for today, generating and
// storing one on first call. The bool reports whether the row already
// existed.
func (s *InspirationService) Daily(ctx context.Context, userID uuid.UUID) (*models.AIInspiration, bool, error) {
	today := types.Today()
	cacheKey := fmt.Sprintf("inspiration:daily:%s:%s", userID, today)

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached models.AIInspiration
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
		}
	}

	var existing models.AIInspiration
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_date = ?", userID, today).
		Order("created_at asc").
		First(&existing).Error
	if err == nil {
		s.cacheDaily(ctx, cacheKey, &existing)
		return &existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	inspirationType := models.InspirationTypes[rand.Intn(len(models.InspirationTypes))]
	inspiration := models.AIInspiration{
		UserID:          userID,
		InspirationType: inspirationType,
		Content:         s.generateContent(ctx, inspirationType),
		CreatedDate:     today,
	}
	if err := s.db.WithContext(ctx).Create(&inspiration).Error; err != nil {
		return nil, false, err
	}
	s.cacheDaily(ctx, cacheKey, &inspiration)
	return &inspiration, false, nil
}

// Generate creates and stores a new inspiration of the requested type,
// regardless of what already exists for today. An empty type means
// daily_quote.
func (s *InspirationService) Generate(ctx context.Context, userID uuid.UUID, inspirationType string) (*models.AIInspiration, error) {
	if inspirationType == "" {
		inspirationType = models.InspirationDailyQuote
	}
	if !models.ValidInspirationType(inspirationType) {
		return nil, NewValidationError("invalid inspiration type: %s", inspirationType)
	}

	inspiration := models.AIInspiration{
		UserID:          userID,
		InspirationType: inspirationType,
		Content:         s.generateContent(ctx, inspirationType),
		CreatedDate:     types.Today(),
	}
	if err := s.db.WithContext(ctx).Create(&inspiration).Error; err != nil {
		return nil, err
	}
	return &inspiration, nil
}

// History returns past inspirations newest-first, capped at 20 by default.
func (s *InspirationService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.AIInspiration, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	inspirations := []models.AIInspiration{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_date desc, created_at desc").
		Limit(limit).
		Find(&inspirations).Error
	return inspirations, err
}

// Delete removes an inspiration permanently.
func (s *InspirationService) Delete(ctx context.Context, userID, inspirationID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", inspirationID, userID).
		Delete(&models.AIInspiration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// generateContent asks the generator for content, falling back to the
// canned pool on any failure. It never errors.
func (s *InspirationService) generateContent(ctx context.Context, inspirationType string) string {
	if s.generator != nil {
		prompts := inspirationPrompts[inspirationType]
		prompt := prompts[rand.Intn(len(prompts))]
		content, err := s.generator.GenerateText(ctx, generatorSystemPrompt, prompt)
		if err == nil {
			return content
		}
		log.Printf("[InspirationService] generation failed, using fallback: %v", err)
	}
	fallbacks := fallbackInspirations[inspirationType]
	return fallbacks[rand.Intn(len(fallbacks))]
}

func (s *InspirationService) cacheDaily(ctx context.Context, key string, inspiration *models.AIInspiration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(inspiration)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, dailyCacheTTL).Err(); err != nil {
		log.Printf("[InspirationService] failed to cache daily inspiration: %v", err)
	}
}
