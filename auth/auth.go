package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"interviewapp/db"
	"interviewapp/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	jwtKey            []byte
	blacklistedTokens = struct {
		sync.RWMutex
		tokens map[string]time.Time
	}{tokens: make(map[string]time.Time)}
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Uyarı: .env dosyası yüklenemedi, varsayılan değer kullanılıyor!")
	}
	// JWT anahtarını environment variable'dan al
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Eğer environment variable yoksa, geliştirme için sabit değer kullan
		secret = "your-256-bit-secret-key-here-make-it-long-and-secure"
		log.Println("Uyarı: JWT_SECRET environment variable'ı bulunamadı, varsayılan değer kullanılıyor!")
	}
	jwtKey = []byte(secret)

	// Token temizleme işlemini başlat
	go func() {
		for {
			time.Sleep(1 * time.Hour)
			cleanupBlacklistedTokens()
		}
	}()
}

func cleanupBlacklistedTokens() {
	blacklistedTokens.Lock()
	defer blacklistedTokens.Unlock()

	now := time.Now()
	for token, expiry := range blacklistedTokens.tokens {
		if now.After(expiry) {
			delete(blacklistedTokens.tokens, token)
		}
	}
}

func BlacklistToken(tokenString string, expiry time.Time) {
	blacklistedTokens.Lock()
	defer blacklistedTokens.Unlock()
	blacklistedTokens.tokens[tokenString] = expiry
}

func IsTokenBlacklisted(tokenString string) bool {
	blacklistedTokens.RLock()
	defer blacklistedTokens.RUnlock()
	_, exists := blacklistedTokens.tokens[tokenString]
	return exists
}

func GenerateJWT(userID int, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(), // 24 saat geçerli
		"iat":      time.Now().Unix(),                     // Token oluşturulma zamanı
		"jti":      uuid.New().String(),                   // Benzersiz token ID
	})

	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ExtractToken(r *http.Request) string {
	tokenString := r.Header.Get("Authorization")
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		return tokenString[7:]
	}

	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}

	return ""
}

// Token'ı doğrular, kullanıcı ID ve kullanıcı adını döner
func validateToken(tokenString string) (int, string, error) {
	if IsTokenBlacklisted(tokenString) {
		return 0, "", fmt.Errorf("token geçersiz kılınmış")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen imza metodu: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})

	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("geçersiz token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("token içeriği geçersiz")
	}

	// Token süre kontrolü
	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return 0, "", fmt.Errorf("token süresi dolmuş")
		}
	}

	userIDf, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("token içeriği geçersiz")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", fmt.Errorf("token içeriği geçersiz")
	}

	return int(userIDf), username, nil
}

// JwtVerify oturum gerektiren endpoint'ler için: token yoksa veya geçersizse 401 döner
func JwtVerify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ExtractToken(r)

		if tokenString == "" {
			utils.SendError(w, http.StatusUnauthorized, "Token bulunamadı")
			return
		}

		userID, username, err := validateToken(tokenString)
		if err != nil {
			utils.SendError(w, http.StatusUnauthorized, err.Error())
			return
		}

		// Kullanıcının veritabanında hala aktif olduğunu kontrol et
		pool := db.GetPool()
		var exists bool
		err = pool.QueryRow(context.Background(),
			"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND username = $2)",
			userID, username).Scan(&exists)

		if err != nil || !exists {
			utils.SendError(w, http.StatusUnauthorized, "Kullanıcı bulunamadı veya pasif durumda")
			return
		}

		// Context'e kullanıcı bilgilerini ekle
		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "username", username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// JwtOptional oturum gerektirmeyen ama oturuma göre zenginleşen endpoint'ler için:
// geçerli token varsa context'e kullanıcıyı ekler, yoksa isteği olduğu gibi geçirir
func JwtOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ExtractToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, username, err := validateToken(tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "username", username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Context'ten kullanıcı ID'sini okur; oturum yoksa ok=false döner
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value("userID").(int)
	return userID, ok
}

func Logout(w http.ResponseWriter, r *http.Request) {
	tokenString := ExtractToken(r)
	if tokenString != "" {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})

		if err == nil && token.Valid {
			claims := token.Claims.(jwt.MapClaims)
			if exp, ok := claims["exp"].(float64); ok {
				BlacklistToken(tokenString, time.Unix(int64(exp), 0))
			}
		}

		// Cookie'yi sil
		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}

	utils.SendSuccess(w, "Başarıyla çıkış yapıldı", nil)
}
