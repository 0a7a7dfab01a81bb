package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"interviewapp/db"
	"interviewapp/models"
	"interviewapp/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// Favori durumunu tersine çevirir: kayıt yoksa ekler, varsa siler
func ToggleFavorite(w http.ResponseWriter, r *http.Request) {
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

	// Mevcut favori kaydına bak
	var favoriteID int
	err = pool.QueryRow(r.Context(),
		"SELECT id FROM user_favorites WHERE user_id = $1 AND question_id = $2",
		userID, questionID).Scan(&favoriteID)

	isFavorite := false
	if errors.Is(err, pgx.ErrNoRows) {
		// Favori yok: ekle
		_, err = pool.Exec(r.Context(),
			"INSERT INTO user_favorites (user_id, question_id, created_at) VALUES ($1, $2, CURRENT_TIMESTAMP)",
			userID, questionID)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Favori ekleme hatası")
			return
		}
		isFavorite = true
	} else if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Favori kontrol hatası")
		return
	} else {
		// Favori var: kaldır
		_, err = pool.Exec(r.Context(),
			"DELETE FROM user_favorites WHERE id = $1", favoriteID)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Favori silme hatası")
			return
		}
	}

	utils.SendSuccess(w, "Favori durumu güncellendi", map[string]interface{}{
		"is_favorite": isFavorite,
	})
}

// Kullanıcının favorileri, en yeni eklenen önce
func GetMyFavorites(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)

	pool := db.GetPool()
	rows, err := pool.Query(r.Context(), fmt.Sprintf(`
		SELECT %s, uf.created_at
		FROM user_favorites uf
		JOIN questions q ON q.id = uf.question_id
		WHERE uf.user_id = $1
		ORDER BY uf.created_at DESC`, questionColumns), userID)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Favoriler getirilemedi: "+err.Error())
		return
	}
	defer rows.Close()

	var favorites []models.FavoriteQuestion
	for rows.Next() {
		var f models.FavoriteQuestion
		err := rows.Scan(
			&f.ID, &f.QuestionNumber, &f.Title, &f.Content, &f.ContentHTML,
			&f.Difficulty, &f.Tags, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt,
			&f.Published, &f.ViewCount, &f.FavoritedAt)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Favori okuma hatası")
			return
		}
		favorites = append(favorites, f)
	}

	utils.SendSuccess(w, "Favoriler getirildi", favorites)
}
