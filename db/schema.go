package db

import (
	"context"
	"fmt"
	"log"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(100) NOT NULL,
    password TEXT NOT NULL,
    email VARCHAR(255) NOT NULL,
    name VARCHAR(100),
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT uk_username UNIQUE (username),
    CONSTRAINT uk_email UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS roles (
    id SERIAL PRIMARY KEY,
    name VARCHAR(50) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS users_roles (
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, role_id)
);

CREATE TABLE IF NOT EXISTS categories (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE,
    description TEXT,
    icon VARCHAR(50),
    color VARCHAR(50),
    display_order INTEGER NOT NULL DEFAULT 0,
    range_start INTEGER NOT NULL DEFAULT 0,
    range_end INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
    id SERIAL PRIMARY KEY,
    question_number INTEGER NOT NULL,
    title VARCHAR(500) NOT NULL,
    content TEXT NOT NULL,
    content_html TEXT,
    difficulty VARCHAR(20) NOT NULL,
    tags TEXT,
    category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ,
    published BOOLEAN NOT NULL DEFAULT TRUE,
    view_count INTEGER NOT NULL DEFAULT 0,
    CONSTRAINT uk_question_number UNIQUE (question_number)
);

CREATE TABLE IF NOT EXISTS user_favorites (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT uk_user_favorite UNIQUE (user_id, question_id)
);

CREATE TABLE IF NOT EXISTS user_progress (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TIMESTAMPTZ,
    notes TEXT,
    CONSTRAINT uk_user_progress UNIQUE (user_id, question_id)
);
`

// Başlangıçta eklenen 7 sabit kategori
var seedCategories = []struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Order       int
	Start, End  int
}{
	{"Go Fundamentals", "Dil temelleri, sözdizimi ve standart kütüphane", "code", "blue", 1, 1, 50},
	{"Data Structures & Algorithms", "Veri yapıları, algoritmalar ve karmaşıklık analizi", "layers", "green", 2, 51, 110},
	{"Databases & SQL", "İlişkisel veritabanları, sorgular ve indeksleme", "database", "orange", 3, 111, 160},
	{"Web & REST APIs", "HTTP, REST tasarımı ve web servisleri", "globe", "teal", 4, 161, 210},
	{"Concurrency", "Goroutine'ler, kanallar ve senkronizasyon", "cpu", "red", 5, 211, 250},
	{"System Design", "Mimari, ölçekleme ve dağıtık sistemler", "diagram", "purple", 6, 251, 300},
	{"DevOps & Cloud", "CI/CD, konteynerler ve bulut altyapısı", "server", "gray", 7, 301, 340},
}

// Migrate tabloları oluşturur ve sabit satırları ekler
func Migrate() error {
	ctx := context.Background()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Roller yoksa ekle
	for _, role := range []string{"Admin", "User"} {
		_, err := pool.Exec(ctx,
			"INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", role)
		if err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role, err)
		}
	}

	// Kategoriler boşsa 7 sabit kategoriyi ekle
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range seedCategories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (name, description, icon, color, display_order, range_start, range_end)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.Name, c.Description, c.Icon, c.Color, c.Order, c.Start, c.End)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}

	log.Printf("Seeded %d categories", len(seedCategories))
	return nil
}
