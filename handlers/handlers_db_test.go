package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"interviewapp/auth"
	"interviewapp/db"
	"interviewapp/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Entegrasyon testleri TEST_DATABASE_URL gerektirir, yoksa atlanır
func setupHandlerDB(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if db.GetPool() == nil {
		require.NoError(t, db.ConnectURL(dsn))
	}
	require.NoError(t, db.Migrate())

	ctx := context.Background()
	_, err := db.GetPool().Exec(ctx, "DELETE FROM questions")
	require.NoError(t, err)
	_, err = db.GetPool().Exec(ctx, "DELETE FROM users")
	require.NoError(t, err)
}

func createTestUser(t *testing.T) int {
	var id int
	username := fmt.Sprintf("user_%d", time.Now().UnixNano())
	err := db.GetPool().QueryRow(context.Background(),
		"INSERT INTO users (username, password, email) VALUES ($1, 'x', $2) RETURNING id",
		username, username+"@example.com").Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestQuestion(t *testing.T, number int) int {
	var id int
	err := db.GetPool().QueryRow(context.Background(), `
		INSERT INTO questions (question_number, title, content, difficulty, category_id)
		VALUES ($1, $2, 'Content', 'Intermediate', 1)
		RETURNING id`,
		number, fmt.Sprintf("Question %d", number)).Scan(&id)
	require.NoError(t, err)
	return id
}

// Handler'ı chi parametresi ve oturum bilgisiyle çağırır
func callHandler(handler http.HandlerFunc, method, target string, userID int, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != 0 {
		ctx = context.WithValue(ctx, "userID", userID)
	}

	w := httptest.NewRecorder()
	handler(w, req.WithContext(ctx))
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp models.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data is not an object")
	return data
}

// İki kez favorilemek başlangıç durumuna dönmeli ve satır bırakmamalı
func TestToggleFavoriteRoundTrip(t *testing.T) {
	setupHandlerDB(t)
	userID := createTestUser(t)
	questionID := createTestQuestion(t, 1)
	params := map[string]string{"questionId": strconv.Itoa(questionID)}

	w := callHandler(ToggleFavorite, "POST", "/questions/togglefavorite/1", userID, params)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["is_favorite"])

	w = callHandler(ToggleFavorite, "POST", "/questions/togglefavorite/1", userID, params)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["is_favorite"])

	var count int
	require.NoError(t, db.GetPool().QueryRow(context.Background(),
		"SELECT COUNT(*) FROM user_favorites WHERE user_id = $1", userID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestToggleFavoriteUnknownQuestion(t *testing.T) {
	setupHandlerDB(t)
	userID := createTestUser(t)

	w := callHandler(ToggleFavorite, "POST", "/questions/togglefavorite/999999", userID,
		map[string]string{"questionId": "999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// completed_at yalnızca tamamlandığında dolu olmalı
func TestToggleCompletedTimestampInvariant(t *testing.T) {
	setupHandlerDB(t)
	userID := createTestUser(t)
	questionID := createTestQuestion(t, 2)
	params := map[string]string{"questionId": strconv.Itoa(questionID)}

	w := callHandler(ToggleCompleted, "POST", "/questions/togglecompleted/2", userID, params)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["is_completed"])

	var completed bool
	var completedAt *time.Time
	require.NoError(t, db.GetPool().QueryRow(context.Background(),
		"SELECT completed, completed_at FROM user_progress WHERE user_id = $1 AND question_id = $2",
		userID, questionID).Scan(&completed, &completedAt))
	assert.True(t, completed)
	assert.NotNil(t, completedAt)

	w = callHandler(ToggleCompleted, "POST", "/questions/togglecompleted/2", userID, params)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["is_completed"])

	// Kayıt silinmez, bayrak ve zaman damgası sıfırlanır
	require.NoError(t, db.GetPool().QueryRow(context.Background(),
		"SELECT completed, completed_at FROM user_progress WHERE user_id = $1 AND question_id = $2",
		userID, questionID).Scan(&completed, &completedAt))
	assert.False(t, completed)
	assert.Nil(t, completedAt)
}

// Her detay görüntüleme sayacı tam olarak 1 artırmalı
func TestDetailViewIncrementsViewCount(t *testing.T) {
	setupHandlerDB(t)
	questionID := createTestQuestion(t, 3)
	params := map[string]string{"id": strconv.Itoa(questionID)}

	for i := 1; i <= 3; i++ {
		w := callHandler(GetQuestion, "GET", "/questions/3", 0, params)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var viewCount int
	require.NoError(t, db.GetPool().QueryRow(context.Background(),
		"SELECT view_count FROM questions WHERE id = $1", questionID).Scan(&viewCount))
	assert.Equal(t, 3, viewCount)

	// İlk görüntülemede HTML önbelleği yazılmış olmalı
	var contentHTML *string
	require.NoError(t, db.GetPool().QueryRow(context.Background(),
		"SELECT content_html FROM questions WHERE id = $1", questionID).Scan(&contentHTML))
	assert.NotNil(t, contentHTML)
}

func TestDetailViewUnknownQuestion(t *testing.T) {
	setupHandlerDB(t)

	w := callHandler(GetQuestion, "GET", "/questions/999999", 0,
		map[string]string{"id": "999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Kategori yoksa listeleme 404 dönmeli
func TestCategoryListingUnknownCategory(t *testing.T) {
	setupHandlerDB(t)

	w := callHandler(GetCategoryQuestions, "GET", "/questions/category/999999", 0,
		map[string]string{"id": "999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Filtreli listeleme yalnızca eşleşen yayınlanmış soruları dönmeli
func TestListQuestionsFilters(t *testing.T) {
	setupHandlerDB(t)
	ctx := context.Background()

	for i := 1; i <= 20; i++ {
		createTestQuestion(t, i)
	}
	// Yayında olmayan bir soru listeye girmemeli
	_, err := db.GetPool().Exec(ctx, `
		INSERT INTO questions (question_number, title, content, difficulty, category_id, published)
		VALUES (21, 'Hidden', 'Hidden content', 'Advanced', 1, FALSE)`)
	require.NoError(t, err)

	view, err := listQuestions(ctx, nil, "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, 20, view.Total)
	assert.Equal(t, 2, view.TotalPages)
	assert.Len(t, view.Questions, 15)
	// Soru numarasına göre artan sıralama
	assert.Equal(t, 1, view.Questions[0].QuestionNumber)
	assert.Equal(t, 15, view.Questions[14].QuestionNumber)

	view, err = listQuestions(ctx, nil, "", "", 2)
	require.NoError(t, err)
	assert.Len(t, view.Questions, 5)
	assert.Equal(t, 16, view.Questions[0].QuestionNumber)

	// Arama: numara metni de eşleşir
	view, err = listQuestions(ctx, nil, "", "19", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, 19, view.Questions[0].QuestionNumber)
}

// Oturum olmadan mutasyon endpoint'leri 401 dönmeli ve veri değiştirmemeli
func TestToggleFavoriteUnauthorized(t *testing.T) {
	handler := auth.JwtVerify(http.HandlerFunc(ToggleFavorite))

	req := httptest.NewRequest("POST", "/questions/togglefavorite/1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
