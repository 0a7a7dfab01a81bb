package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"interviewapp/auth"
	"interviewapp/db"
	"interviewapp/models"
	"interviewapp/services"
	"interviewapp/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pageSize = 15

const questionColumns = `q.id, q.question_number, q.title, q.content, q.content_html,
	   q.difficulty, q.tags, q.category_id, q.created_at, q.updated_at,
	   q.published, q.view_count`

// Listeleme filtrelerini WHERE koşullarına çevirir.
// Geçersiz zorluk değeri yok sayılır; arama büyük/küçük harf duyarlıdır.
func buildQuestionFilters(categoryID *int, difficulty, search string) (string, []interface{}) {
	conditions := []string{"q.published = TRUE"}
	var args []interface{}
	argCount := 1

	// Kategori filtresi
	if categoryID != nil {
		conditions = append(conditions, fmt.Sprintf("q.category_id = $%d", argCount))
		args = append(args, *categoryID)
		argCount++
	}

	// Zorluk seviyesi filtresi
	if difficulty != "" && models.ValidDifficulty(difficulty) {
		conditions = append(conditions, fmt.Sprintf("q.difficulty = $%d", argCount))
		args = append(args, difficulty)
		argCount++
	}

	// Arama filtresi: başlık, içerik veya soru numarası
	if search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(q.title LIKE $%d OR q.content LIKE $%d OR CAST(q.question_number AS TEXT) LIKE $%d)",
			argCount, argCount, argCount))
		args = append(args, "%"+search+"%")
		argCount++
	}

	return strings.Join(conditions, " AND "), args
}

// Toplam sayfa sayısı = ceil(toplam / sayfa boyutu)
func totalPages(total int) int {
	return (total + pageSize - 1) / pageSize
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func scanQuestion(row pgx.Row, q *models.Question) error {
	return row.Scan(
		&q.ID, &q.QuestionNumber, &q.Title, &q.Content, &q.ContentHTML,
		&q.Difficulty, &q.Tags, &q.CategoryID, &q.CreatedAt, &q.UpdatedAt,
		&q.Published, &q.ViewCount)
}

// Filtrelenmiş ve sayfalanmış soru listesini hazırlar
func listQuestions(ctx context.Context, categoryID *int, difficulty, search string, page int) (*models.QuestionListView, error) {
	pool := db.GetPool()
	where, args := buildQuestionFilters(categoryID, difficulty, search)

	// Önce toplam eşleşen sayıyı al
	var total int
	countQuery := "SELECT COUNT(*) FROM questions q WHERE " + where
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Sayfa dilimini getir (soru numarasına göre artan)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM questions q
		WHERE %s
		ORDER BY q.question_number ASC
		LIMIT $%d OFFSET $%d`, questionColumns, where, len(args)+1, len(args)+2)
	listArgs := append(args, pageSize, (page-1)*pageSize)

	rows, err := pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	// Filtre çubuğu için kategorileri getir
	catRows, err := pool.Query(ctx, `
		SELECT id, name, description, icon, color, display_order, range_start, range_end
		FROM categories
		ORDER BY display_order`)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()

	var categories []models.Category
	for catRows.Next() {
		var c models.Category
		var description, icon, color *string
		if err := catRows.Scan(&c.ID, &c.Name, &description, &icon, &color,
			&c.DisplayOrder, &c.RangeStart, &c.RangeEnd); err != nil {
			return nil, err
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

	return &models.QuestionListView{
		Questions:  questions,
		Page:       page,
		TotalPages: totalPages(total),
		Total:      total,
		CategoryID: categoryID,
		Difficulty: difficulty,
		SearchTerm: search,
		Categories: categories,
	}, nil
}

func GetQuestions(w http.ResponseWriter, r *http.Request) {
	// Query parametrelerini al
	var categoryID *int
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			categoryID = &id
		}
	}
	difficulty := r.URL.Query().Get("difficulty")
	search := r.URL.Query().Get("searchTerm")
	page := parsePage(r.URL.Query().Get("page"))

	view, err := listQuestions(r.Context(), categoryID, difficulty, search, page)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching questions: "+err.Error())
		return
	}

	utils.SendSuccess(w, "Questions fetched successfully", view)
}

func GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Geçersiz soru ID")
		return
	}

	pool := db.GetPool()
	var detail models.QuestionDetail

	err = scanQuestion(pool.QueryRow(r.Context(), fmt.Sprintf(`
		SELECT %s FROM questions q WHERE q.id = $1`, questionColumns), id), &detail.Question)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.SendError(w, http.StatusNotFound, "Soru bulunamadı")
		return
	}
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Soru getirme hatası: "+err.Error())
		return
	}

	// Görüntülenme sayacını artır
	err = pool.QueryRow(r.Context(),
		"UPDATE questions SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count",
		id).Scan(&detail.ViewCount)
	if err != nil {
		log.Printf("Görüntülenme sayacı güncellenemedi: %v", err)
	}

	// HTML önbelleği boşsa bir kez üret ve sakla
	if detail.ContentHTML == nil {
		rendered, err := services.RenderMarkdown(detail.Content)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Markdown dönüştürme hatası")
			return
		}
		detail.ContentHTML = &rendered

		if _, err := pool.Exec(r.Context(),
			"UPDATE questions SET content_html = $1 WHERE id = $2", rendered, id); err != nil {
			log.Printf("HTML önbelleği yazılamadı: %v", err)
		}
	}

	// Oturum varsa kullanıcıya özel bayrakları ekle
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		err = pool.QueryRow(r.Context(),
			"SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_id = $1 AND question_id = $2)",
			userID, id).Scan(&detail.IsFavorite)
		if err != nil {
			log.Printf("Favori bayrağı okunamadı: %v", err)
		}

		err = pool.QueryRow(r.Context(),
			"SELECT COALESCE((SELECT completed FROM user_progress WHERE user_id = $1 AND question_id = $2), FALSE)",
			userID, id).Scan(&detail.IsCompleted)
		if err != nil {
			log.Printf("Tamamlanma bayrağı okunamadı: %v", err)
		}
	}

	utils.SendSuccess(w, "Question fetched successfully", detail)
}

func CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Geçersiz istek formatı")
		return
	}

	// Zorunlu alan kontrolü
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Başlık zorunludur"
	}
	if strings.TrimSpace(req.Content) == "" && strings.TrimSpace(req.ContentHTML) == "" {
		fieldErrors["content"] = "İçerik zorunludur"
	}
	if req.NewCategoryName == "" && req.CategoryID == 0 {
		fieldErrors["category_id"] = "Kategori seçilmelidir"
	}
	if len(fieldErrors) > 0 {
		utils.SendValidationError(w, fieldErrors)
		return
	}

	pool := db.GetPool()
	tx, err := pool.Begin(r.Context())
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Transaction başlatma hatası")
		return
	}
	defer tx.Rollback(r.Context())

	// Kategoriyi belirle: yeni kategori adı verildiyse oluştur
	categoryID := req.CategoryID
	var rangeStart int
	if req.NewCategoryName != "" {
		err = tx.QueryRow(r.Context(),
			"SELECT id, range_start FROM categories WHERE name = $1",
			req.NewCategoryName).Scan(&categoryID, &rangeStart)
		if errors.Is(err, pgx.ErrNoRows) {
			err = tx.QueryRow(r.Context(), `
				INSERT INTO categories (name, icon, color, display_order)
				VALUES ($1, $2, $3, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM categories))
				RETURNING id, range_start`,
				req.NewCategoryName, req.NewCategoryIcon, req.NewCategoryColor).Scan(&categoryID, &rangeStart)
		}
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Kategori oluşturma hatası: "+err.Error())
			return
		}
	} else {
		err = tx.QueryRow(r.Context(),
			"SELECT range_start FROM categories WHERE id = $1", categoryID).Scan(&rangeStart)
		if errors.Is(err, pgx.ErrNoRows) {
			utils.SendError(w, http.StatusNotFound, "Kategori bulunamadı")
			return
		}
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Kategori kontrol hatası")
			return
		}
	}

	// Soru numarası verilmediyse kategorideki en büyük numaranın ardılını ata
	questionNumber := 0
	if req.QuestionNumber != nil {
		questionNumber = *req.QuestionNumber
	} else {
		var maxNumber *int
		err = tx.QueryRow(r.Context(),
			"SELECT MAX(question_number) FROM questions WHERE category_id = $1",
			categoryID).Scan(&maxNumber)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Soru numarası belirlenemedi")
			return
		}
		if maxNumber != nil {
			questionNumber = *maxNumber + 1
		} else if rangeStart > 0 {
			questionNumber = rangeStart
		} else {
			questionNumber = 1
		}
	}

	// Markdown verildiyse HTML'e çevir; yalnızca HTML verildiyse düz metni türet
	content := strings.TrimSpace(req.Content)
	var contentHTML string
	if content != "" {
		contentHTML, err = services.RenderMarkdown(content)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Markdown dönüştürme hatası")
			return
		}
	} else {
		contentHTML = req.ContentHTML
		content = services.StripHTML(req.ContentHTML)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = services.ClassifyDifficulty(content)
	} else if !models.ValidDifficulty(difficulty) {
		utils.SendValidationError(w, map[string]string{"difficulty": "Geçersiz zorluk seviyesi"})
		return
	}

	var tags *string
	if req.Tags != "" {
		tags = &req.Tags
	}

	var question models.Question
	err = scanQuestion(tx.QueryRow(r.Context(), `
		INSERT INTO questions (question_number, title, content, content_html, difficulty, tags, category_id, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, CURRENT_TIMESTAMP)
		RETURNING id, question_number, title, content, content_html, difficulty, tags,
		          category_id, created_at, updated_at, published, view_count`,
		questionNumber, req.Title, content, contentHTML, difficulty, tags, categoryID), &question)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			utils.SendError(w, http.StatusConflict, "Bu soru numarası zaten kullanımda")
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Soru oluşturma hatası: "+err.Error())
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Transaction commit hatası")
		return
	}

	utils.SendSuccess(w, "Soru başarıyla oluşturuldu", question)
}

// Soru Güncelleme (admin)
func UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Geçersiz istek formatı")
		return
	}

	if req.Difficulty != "" && !models.ValidDifficulty(req.Difficulty) {
		utils.SendValidationError(w, map[string]string{"difficulty": "Geçersiz zorluk seviyesi"})
		return
	}

	pool := db.GetPool()

	// İçerik değişince HTML önbelleği sıfırlanır, bir sonraki görüntülemede yeniden üretilir
	result, err := pool.Exec(r.Context(), `
		UPDATE questions SET
			title = COALESCE(NULLIF($1, ''), title),
			content = COALESCE(NULLIF($2, ''), content),
			content_html = NULL,
			difficulty = COALESCE(NULLIF($3, ''), difficulty),
			tags = COALESCE(NULLIF($4, ''), tags),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`,
		req.Title, req.Content, req.Difficulty, req.Tags, id)

	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Soru güncelleme hatası: "+err.Error())
		return
	}

	if rowsAffected := result.RowsAffected(); rowsAffected == 0 {
		utils.SendError(w, http.StatusNotFound, "Soru bulunamadı")
		return
	}

	utils.SendSuccess(w, "Soru başarıyla güncellendi", nil)
}

// Soru Silme (admin) — favoriler ve ilerleme kayıtları cascade ile silinir
func DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pool := db.GetPool()
	result, err := pool.Exec(r.Context(), "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Soru silme hatası: "+err.Error())
		return
	}

	if rowsAffected := result.RowsAffected(); rowsAffected == 0 {
		utils.SendError(w, http.StatusNotFound, "Soru bulunamadı")
		return
	}

	utils.SendSuccess(w, "Soru başarıyla silindi", nil)
}
