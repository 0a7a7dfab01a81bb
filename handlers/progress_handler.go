package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"interviewapp/db"
	"interviewapp/models"
	"interviewapp/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// Tamamlanma durumunu tersine çevirir; ilk çağrıda kaydı oluşturur.
// completed_at yalnızca tamamlandığında doludur.
func ToggleCompleted(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)

	questionID, err := strconv.Atoi(chi.URLParam(r, "questionId"))
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Geçersiz soru ID")
		return
	}

	pool := db.GetPool()

	// Soru var mı kontrol et
	var exists bool
	err = pool.QueryRow(r.Context(),
		"SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)", questionID).Scan(&exists)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Soru kontrol hatası")
		return
	}
	if !exists {
		utils.SendError(w, http.StatusNotFound, "Soru bulunamadı")
		return
	}

	// Mevcut ilerleme kaydına bak
	var progressID int
	var completed bool
	err = pool.QueryRow(r.Context(),
		"SELECT id, completed FROM user_progress WHERE user_id = $1 AND question_id = $2",
		userID, questionID).Scan(&progressID, &completed)

	isCompleted := false
	if errors.Is(err, pgx.ErrNoRows) {
		// İlk işaretleme: tamamlandı olarak oluştur
		_, err = pool.Exec(r.Context(), `
			INSERT INTO user_progress (user_id, question_id, completed, completed_at)
			VALUES ($1, $2, TRUE, CURRENT_TIMESTAMP)`,
			userID, questionID)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "İlerleme kaydı oluşturma hatası")
			return
		}
		isCompleted = true
	} else if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "İlerleme kontrol hatası")
		return
	} else {
		// Bayrağı tersine çevir; kayıt hiçbir zaman silinmez
		isCompleted = !completed
		_, err = pool.Exec(r.Context(), `
			UPDATE user_progress
			SET completed = $1,
			    completed_at = CASE WHEN $1 THEN CURRENT_TIMESTAMP ELSE NULL END
			WHERE id = $2`,
			isCompleted, progressID)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "İlerleme güncelleme hatası")
			return
		}
	}

	utils.SendSuccess(w, "Tamamlanma durumu güncellendi", map[string]interface{}{
		"is_completed": isCompleted,
	})
}

// Kullanıcının tamamladığı sorular ve tamamlanma yüzdesi
func GetMyProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)

	pool := db.GetPool()
	rows, err := pool.Query(r.Context(), fmt.Sprintf(`
		SELECT %s, up.completed_at
		FROM user_progress up
		JOIN questions q ON q.id = up.question_id
		WHERE up.user_id = $1 AND up.completed
		ORDER BY up.completed_at DESC`, questionColumns), userID)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "İlerleme getirilemedi: "+err.Error())
		return
	}
	defer rows.Close()

	var view models.ProgressView
	for rows.Next() {
		var c models.CompletedQuestion
		err := rows.Scan(
			&c.ID, &c.QuestionNumber, &c.Title, &c.Content, &c.ContentHTML,
			&c.Difficulty, &c.Tags, &c.CategoryID, &c.CreatedAt, &c.UpdatedAt,
			&c.Published, &c.ViewCount, &c.CompletedAt)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "İlerleme okuma hatası")
			return
		}
		view.Completed = append(view.Completed, c)
	}
	view.CompletedCount = len(view.Completed)

	// Tamamlanma yüzdesi toplam soru sayısına göre hesaplanır
	if err := pool.QueryRow(r.Context(),
		"SELECT COUNT(*) FROM questions").Scan(&view.TotalQuestions); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Soru sayısı okunamadı")
		return
	}
	view.Percentage = CompletionPercentage(view.CompletedCount, view.TotalQuestions)

	utils.SendSuccess(w, "İlerleme getirildi", view)
}

// Yüzdeyi 1 ondalık basamağa yuvarlar
func CompletionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}
