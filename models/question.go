package models

import "time"

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Zorluk seviyesi üç sabit değerden biri olmalı (büyük/küçük harf duyarlı)
func ValidDifficulty(s string) bool {
	return s == DifficultyBeginner || s == DifficultyIntermediate || s == DifficultyAdvanced
}

type Question struct {
	ID             int        `json:"id"`
	QuestionNumber int        `json:"question_number"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	ContentHTML    *string    `json:"content_html,omitempty"`
	Difficulty     string     `json:"difficulty"`
	Tags           *string    `json:"tags,omitempty"`
	CategoryID     int        `json:"category_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	Published      bool       `json:"published"`
	ViewCount      int        `json:"view_count"`
}

// Detay görünümü: soru + oturum açmış kullanıcıya özel bayraklar
type QuestionDetail struct {
	Question
	IsFavorite  bool `json:"is_favorite"`
	IsCompleted bool `json:"is_completed"`
}

// Listeleme görünümü (sayfa bilgisi ve filtreler dahil)
type QuestionListView struct {
	Questions  []Question `json:"questions"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int        `json:"total"`
	CategoryID *int       `json:"category_id,omitempty"`
	Difficulty string     `json:"difficulty,omitempty"`
	SearchTerm string     `json:"search_term,omitempty"`
	Categories []Category `json:"categories"`
}

type QuestionRequest struct {
	QuestionNumber *int   `json:"question_number"`
	Title          string `json:"title"`
	Content        string `json:"content"`      // markdown
	ContentHTML    string `json:"content_html"` // markdown yoksa HTML kabul edilir
	Difficulty     string `json:"difficulty"`
	Tags           string `json:"tags"`
	CategoryID     int    `json:"category_id"`
	// Yeni kategori alanları (opsiyonel)
	NewCategoryName  string `json:"new_category_name"`
	NewCategoryIcon  string `json:"new_category_icon"`
	NewCategoryColor string `json:"new_category_color"`
}
