package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"interviewapp/db"
	"interviewapp/models"
	"interviewapp/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ana sayfa özeti: kategoriler, soru sayıları ve toplamlar
func GetHome(w http.ResponseWriter, r *http.Request) {
	pool := db.GetPool()

	rows, err := pool.Query(r.Context(), `
		SELECT c.id, c.name, c.description, c.icon, c.color,
		       c.display_order, c.range_start, c.range_end,
		       COUNT(q.id) FILTER (WHERE q.published) AS question_count
		FROM categories c
		LEFT JOIN questions q ON q.category_id = c.id
		GROUP BY c.id
		ORDER BY c.display_order`)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching categories: "+err.Error())
		return
	}
	defer rows.Close()

	var summary models.HomeSummary
	for rows.Next() {
		var cs models.CategorySummary
		var description, icon, color *string
		err := rows.Scan(&cs.ID, &cs.Name, &description, &icon, &color,
			&cs.DisplayOrder, &cs.RangeStart, &cs.RangeEnd, &cs.QuestionCount)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Error scanning category: "+err.Error())
			return
		}
		if description != nil {
			cs.Description = *description
		}
		if icon != nil {
			cs.Icon = *icon
		}
		if color != nil {
			cs.Color = *color
		}
		summary.Categories = append(summary.Categories, cs)
	}
	summary.TotalCategory = len(summary.Categories)

	// Toplam yayındaki soru ve toplam görüntülenme
	err = pool.QueryRow(r.Context(), `
		SELECT COUNT(*), COALESCE(SUM(view_count), 0)
		FROM questions
		WHERE published`).Scan(&summary.TotalQuestions, &summary.TotalViews)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching totals: "+err.Error())
		return
	}

	utils.SendSuccess(w, "Summary fetched successfully", summary)
}

// Kategoriye göre soru listesi; kategori yoksa 404 döner
func GetCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Geçersiz kategori ID")
		return
	}

	pool := db.GetPool()
	var exists bool
	err = pool.QueryRow(r.Context(),
		"SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)", categoryID).Scan(&exists)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Kategori kontrol hatası")
		return
	}
	if !exists {
		utils.SendError(w, http.StatusNotFound, "Kategori bulunamadı")
		return
	}

	page := parsePage(r.URL.Query().Get("page"))
	view, err := listQuestions(r.Context(), &categoryID, "", "", page)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching questions: "+err.Error())
		return
	}

	utils.SendSuccess(w, "Questions fetched successfully", view)
}

// Kategori Oluşturma (admin)
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		utils.SendError(w, http.StatusBadRequest, "Name is required")
		return
	}

	pool := db.GetPool()
	var id int
	err := pool.QueryRow(r.Context(), `
		INSERT INTO categories (name, description, icon, color, display_order, range_start, range_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		req.Name, req.Description, req.Icon, req.Color,
		req.DisplayOrder, req.RangeStart, req.RangeEnd).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			utils.SendError(w, http.StatusConflict, "Bu kategori adı zaten kullanımda")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Error creating category")
		return
	}

	utils.SendSuccess(w, "Category created successfully", map[string]interface{}{"id": id})
}

// Kategori Güncelleme (admin)
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		utils.SendError(w, http.StatusBadRequest, "Name is required")
		return
	}

	pool := db.GetPool()
	result, err := pool.Exec(r.Context(), `
		UPDATE categories
		SET name = $1, description = $2, icon = $3, color = $4,
		    display_order = $5, range_start = $6, range_end = $7
		WHERE id = $8`,
		req.Name, req.Description, req.Icon, req.Color,
		req.DisplayOrder, req.RangeStart, req.RangeEnd, categoryID)

	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error updating category")
		return
	}

	if rowsAffected := result.RowsAffected(); rowsAffected == 0 {
		utils.SendError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.SendSuccess(w, "Category updated successfully", req)
}

// Kategori Silme (admin) — sorular kategoriye bağlıyken silme engellenir
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	pool := db.GetPool()
	result, err := pool.Exec(r.Context(), "DELETE FROM categories WHERE id = $1", categoryID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			utils.SendError(w, http.StatusConflict, "Kategoride sorular varken silinemez")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Error deleting category")
		return
	}

	if rowsAffected := result.RowsAffected(); rowsAffected == 0 {
		utils.SendError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.SendSuccess(w, "Category deleted successfully", nil)
}

// Tüm kategorileri getir (admin)
func GetAllCategories(w http.ResponseWriter, r *http.Request) {
	pool := db.GetPool()
	rows, err := pool.Query(r.Context(), `
		SELECT id, name, description, icon, color, display_order, range_start, range_end
		FROM categories
		ORDER BY display_order`)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var description, icon, color *string
		if err := rows.Scan(&c.ID, &c.Name, &description, &icon, &color,
			&c.DisplayOrder, &c.RangeStart, &c.RangeEnd); err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Error scanning category")
			return
		}
		if description != nil {
			c.Description = *description
		}
		if icon != nil {
			c.Icon = *icon
		}
		if color != nil {
			c.Color = *color
		}
		categories = append(categories, c)
	}

	utils.SendSuccess(w, "Categories fetched successfully", categories)
}
