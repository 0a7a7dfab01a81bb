package main

import (
	"log"
	"net/http"

	"interviewapp/auth"
	"interviewapp/db"
	"interviewapp/handlers"
	appmiddleware "interviewapp/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Veritabanı bağlantı havuzunu başlat
	if err := db.Connect(); err != nil {
		log.Fatal("Could not initialize database connection pool:", err)
	}
	defer db.GetPool().Close()

	// Tabloları oluştur, sabit kategorileri ve rolleri ekle
	if err := db.Migrate(); err != nil {
		log.Fatal("Could not migrate database schema:", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	// CORS middleware'ini ekle
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Ana sayfa: kategori özeti ve toplam sayılar
	r.Get("/", handlers.GetHome)

	r.Post("/login", handlers.Login)
	r.Post("/register", handlers.Register)
	r.Post("/logout", auth.Logout)

	// Herkese açık soru listeleme ve detay
	r.Group(func(r chi.Router) {
		r.Use(auth.JwtOptional)

		r.Get("/questions", handlers.GetQuestions)
		r.Get("/questions/category/{id}", handlers.GetCategoryQuestions)
		r.Get("/questions/{id}", handlers.GetQuestion)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.JwtVerify)

		// Profil endpoint'leri
		r.Get("/profile", handlers.GetProfile)
		r.Put("/profile", handlers.UpdateProfile)
		r.Put("/profile/password", handlers.ChangePassword)

		// Normal kullanıcı işlemleri
		r.Post("/questions/create", handlers.CreateQuestion)
		r.Post("/questions/togglefavorite/{questionId}", handlers.ToggleFavorite)
		r.Post("/questions/togglecompleted/{questionId}", handlers.ToggleCompleted)
		r.Get("/questions/myfavorites", handlers.GetMyFavorites)
		r.Get("/questions/myprogress", handlers.GetMyProgress)

		// Admin endpoint'leri
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireAdmin)

			// Kullanıcı ve rol yönetimi
			r.Get("/admin/users", handlers.GetAllUsers)
			r.Post("/users/{userId}/roles", handlers.AssignRole)
			r.Delete("/users/{userId}/roles", handlers.RemoveRole)

			// Kategori işlemleri
			r.Get("/admin/categories", handlers.GetAllCategories)
			r.Post("/admin/categories", handlers.CreateCategory)
			r.Put("/admin/categories/{id}", handlers.UpdateCategory)
			r.Delete("/admin/categories/{id}", handlers.DeleteCategory)

			// Soru işlemleri
			r.Put("/admin/questions/{id}", handlers.UpdateQuestion)
			r.Delete("/admin/questions/{id}", handlers.DeleteQuestion)
		})
	})

	// Statik site dosyaları
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	log.Println("Server starting on port 8080...")
	http.ListenAndServe(":8080", r)
}
