package models

import "time"

type UserProgress struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	QuestionID  int        `json:"question_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// İlerleme sayfası satırı: tamamlanan soru + tamamlanma zamanı
type CompletedQuestion struct {
	Question
	CompletedAt time.Time `json:"completed_at"`
}

type ProgressView struct {
	Completed      []CompletedQuestion `json:"completed"`
	CompletedCount int                 `json:"completed_count"`
	TotalQuestions int                 `json:"total_questions"`
	Percentage     float64             `json:"percentage"`
}
