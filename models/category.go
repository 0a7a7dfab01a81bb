package models

type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon,omitempty"`
	Color        string `json:"color,omitempty"`
	DisplayOrder int    `json:"display_order"`
	RangeStart   int    `json:"range_start"`
	RangeEnd     int    `json:"range_end"`
}

// Ana sayfa özeti için kategori + soru sayısı
type CategorySummary struct {
	Category
	QuestionCount int `json:"question_count"`
}

type HomeSummary struct {
	Categories     []CategorySummary `json:"categories"`
	TotalQuestions int               `json:"total_questions"`
	TotalCategory  int               `json:"total_categories"`
	TotalViews     int64             `json:"total_views"`
}

type CategoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"display_order"`
	RangeStart   int    `json:"range_start"`
	RangeEnd     int    `json:"range_end"`
}
