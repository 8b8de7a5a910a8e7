package catalog

import "github.com/example/giftstore/pkg/models"

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

// FallbackGifts is the fixed catalog served when no document store is
// configured. The storefront must never look empty in demo deployments.
func FallbackGifts() []models.GiftView {
	return []models.GiftView{
		{
			Title:       "Love Notes: Daily Reminders",
			Slug:        "love-notes-daily",
			Tagline:     strPtr("Нежные напоминания каждый день"),
			Description: "Телеграм-бот с персональными комплиментами",
			Price:       14.99,
			Badge:       strPtr("Хит"),
			Category:    "reminders",
			Cover:       strPtr("https://images.unsplash.com/photo-1515879218367-8466d910aaa4?q=80&w=1200&auto=format&fit=crop"),
			Rating:      floatPtr(4.9),
		},
		{
			Title:       "Mini-Game: Catch the Hearts",
			Slug:        "catch-the-hearts",
			Tagline:     strPtr("Милый таймкиллер в браузере"),
			Description: "Собери сердца и получи послание любви",
			Price:       9.99,
			Badge:       strPtr("Новинка"),
			Category:    "games",
			Cover:       strPtr("https://images.unsplash.com/photo-1496302662116-35cc4f36df92?q=80&w=1200&auto=format&fit=crop"),
			Rating:      floatPtr(4.7),
		},
	}
}

// FallbackTestimonials mirrors FallbackGifts for the testimonial wall.
func FallbackTestimonials() []models.TestimonialView {
	return []models.TestimonialView{
		{
			Author:  "Анна",
			Role:    strPtr("Москва"),
			Content: "Бот с напоминаниями — это просто магия!",
			Rating:  floatPtr(5),
		},
		{
			Author:  "Игорь",
			Role:    strPtr("СПб"),
			Content: "Мини-игра очень милая, идеальный сюрприз.",
			Rating:  floatPtr(5),
		},
	}
}
