package appmiddleware

import (
	"context"
	"net/http"

	"interviewapp/db"
	"interviewapp/utils"
)

// Admin rolünü kontrol eden middleware
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Kullanıcı ID'sini al
		userID, ok := r.Context().Value("userID").(int)
		if !ok {
			utils.SendError(w, http.StatusUnauthorized, "Oturum bulunamadı")
			return
		}

		// Kullanıcının rollerini kontrol et
		pool := db.GetPool()
		rows, err := pool.Query(context.Background(),
			`SELECT r.name
			 FROM roles r
			 JOIN users_roles ur ON r.id = ur.role_id
			 WHERE ur.user_id = $1`,
			userID)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Kullanıcı rolleri kontrol edilirken hata oluştu")
			return
		}
		defer rows.Close()

		isAdmin := false
		for rows.Next() {
			var role string
			if err := rows.Scan(&role); err != nil {
				utils.SendError(w, http.StatusInternalServerError, "Rol bilgisi okunurken hata")
				return
			}
			if role == "Admin" {
				isAdmin = true
				break
			}
		}

		if !isAdmin {
			utils.SendError(w, http.StatusForbidden, "Bu işlem için admin yetkisi gerekmektedir")
			return
		}

		next.ServeHTTP(w, r)
	})
}
