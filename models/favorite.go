package models

import "time"

type UserFavorite struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	QuestionID int       `json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Favori listesi satırı: soru bilgileri + eklenme zamanı
type FavoriteQuestion struct {
	Question
	FavoritedAt time.Time `json:"favorited_at"`
}
