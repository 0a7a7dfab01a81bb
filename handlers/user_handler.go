package handlers

import (
	"context"
	"net/http"

	"interviewapp/db"
	"interviewapp/models"
	"interviewapp/utils"
)

// Tüm kullanıcıları rolleriyle birlikte getir (admin)
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	pool := db.GetPool()

	rows, err := pool.Query(context.Background(), `
		SELECT id, username, email, name
		FROM users
		ORDER BY id`)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Name)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Error scanning user")
			return
		}
		users = append(users, user)
	}

	// Her kullanıcı için rolleri getir
	for i := range users {
		roleRows, err := pool.Query(context.Background(), `
			SELECT r.name
			FROM roles r
			JOIN users_roles ur ON r.id = ur.role_id
			WHERE ur.user_id = $1`,
			users[i].ID)
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Error fetching user roles")
			return
		}

		var roles []string
		for roleRows.Next() {
			var role string
			if err := roleRows.Scan(&role); err != nil {
				roleRows.Close()
				utils.SendError(w, http.StatusInternalServerError, "Error scanning role")
				return
			}
			roles = append(roles, role)
		}
		roleRows.Close()
		users[i].Roles = roles
	}

	utils.SendSuccess(w, "Users fetched successfully", users)
}
