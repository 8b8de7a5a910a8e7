package seed

import (
	"context"

	"github.com/example/giftstore/pkg/catalog"
	"github.com/example/giftstore/pkg/models"
	"github.com/example/giftstore/pkg/repository"
	"go.uber.org/zap"
)

// Run bootstraps demo data into empty collections. It is idempotent and
// best-effort: any failure is logged and swallowed, startup never depends
// on it. A no-op unless the store is connected.
func Run(ctx context.Context, store repository.DocumentStore, logger *zap.Logger) {
	if store.State() != repository.StateConnected {
		return
	}

	seedCollection(ctx, store, logger, catalog.GiftCollection, giftDocs())
	seedCollection(ctx, store, logger, catalog.TestimonialCollection, testimonialDocs())
}

func seedCollection(ctx context.Context, store repository.DocumentStore, logger *zap.Logger, collection string, docs []interface{}) {
	count, err := store.CountDocuments(ctx, collection)
	if err != nil {
		logger.Warn("Seed count failed", zap.String("collection", collection), zap.Error(err))
		return
	}
	if count > 0 {
		return
	}
	inserted := 0
	for _, doc := range docs {
		if _, err := store.InsertDocument(ctx, collection, doc); err != nil {
			logger.Warn("Seed insert failed", zap.String("collection", collection), zap.Error(err))
			continue
		}
		inserted++
	}
	logger.Info("Seeded demo data", zap.String("collection", collection), zap.Int("inserted", inserted))
}

func giftDocs() []interface{} {
	gifts := []models.Gift{
		{
			Title:       "Love Notes: Daily Reminders",
			Slug:        "love-notes-daily",
			Tagline:     "Нежные напоминания каждый день",
			Description: "Телеграм-бот, который шлет ей персональные комплименты и напоминания, почему она самая лучшая.",
			Price:       14.99,
			Badge:       "Хит",
			Category:    "reminders",
			Cover:       "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?q=80&w=1200&auto=format&fit=crop",
			Features:    []string{"Индивидуальные сообщения", "Гибкий график", "Теплый тон общения"},
			Rating:      ratingPtr(4.9),
		},
		{
			Title:       "Mini-Game: Catch the Hearts",
			Slug:        "catch-the-hearts",
			Tagline:     "Милый таймкиллер в браузере",
			Description: "Лёгкая аркада в розовом неоне — собери сердца и получи послание любви.",
			Price:       9.99,
			Badge:       "Новинка",
			Category:    "games",
			Cover:       "https://images.unsplash.com/photo-1496302662116-35cc4f36df92?q=80&w=1200&auto=format&fit=crop",
			Features:    []string{"Мягкие анимации", "Секретные уровни", "Поделиться результатом"},
			Rating:      ratingPtr(4.7),
		},
		{
			Title:       "Memory Lane: Наши моменты",
			Slug:        "memory-lane",
			Tagline:     "Цифровой альбом с эффектами",
			Description: "Красивый веб-альбом с плавной музыкой и эффектом параллакса, куда можно добавить ваши фото и подписи.",
			Price:       19.99,
			Badge:       "Premium",
			Category:    "notes",
			Cover:       "https://images.unsplash.com/photo-1512428559087-560fa5ceab42?q=80&w=1200&auto=format&fit=crop",
			Features:    []string{"Параллакс галерея", "Музыка на фоне", "Секретное послание"},
			Rating:      ratingPtr(5.0),
		},
	}

	docs := make([]interface{}, len(gifts))
	for i := range gifts {
		gifts[i].Normalize()
		docs[i] = gifts[i]
	}
	return docs
}

func testimonialDocs() []interface{} {
	testimonials := []models.Testimonial{
		{Author: "Анна", Role: "Москва", Content: "Бот с напоминаниями — это просто магия!", Rating: ratingPtr(5)},
		{Author: "Игорь", Role: "СПб", Content: "Мини-игра очень милая, идеальный сюрприз.", Rating: ratingPtr(5)},
	}

	docs := make([]interface{}, len(testimonials))
	for i := range testimonials {
		testimonials[i].Normalize()
		docs[i] = testimonials[i]
	}
	return docs
}

func ratingPtr(f float64) *float64 { return &f }
