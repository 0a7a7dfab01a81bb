package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"interviewapp/db"
	"interviewapp/models"

	"github.com/jackc/pgx/v5"
)

// Markdown dosyasından çıkarılan soru adayı
type ParsedQuestion struct {
	Number     int
	Title      string
	Content    string
	Difficulty string
}

type ImportResult struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Errored  int    `json:"errored"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
}

// Dosya adı -> kategori ID eşlemesi (kategori seed sırasına göre sabit)
var ImportFiles = map[string]int{
	"go_fundamentals.md":            1,
	"data_structures_algorithms.md": 2,
	"databases_sql.md":              3,
	"web_rest_apis.md":              4,
	"concurrency.md":                5,
	"system_design.md":              6,
	"devops_cloud.md":               7,
}

var (
	// Tekil soru başlığı: "## Q5: ..." veya "### **Q5:** ..."
	singleQuestionRe = regexp.MustCompile(`(?m)^#{2,3}[ \t]*(\*\*)?Q(\d+):(\*\*)?[ \t]*`)
	// Aralık başlığı: "## Q10-Q12: ..." -> aralıktaki her numara için bir soru
	rangeQuestionRe = regexp.MustCompile(`(?m)^#{2,3}[ \t]*(\*\*)?Q(\d+)[ \t]*-[ \t]*Q(\d+):(\*\*)?[ \t]*`)
)

var advancedKeywords = []string{
	"architecture", "optimization", "performance",
	"distributed", "microservice", "scalability", "design pattern",
}

var beginnerKeywords = []string{
	"basic", "fundamental", "introduction", "simple", "what is", "define",
}

// İçeriğe göre zorluk sınıflandırması; ileri seviye anahtar kelimeler önceliklidir
func ClassifyDifficulty(text string) string {
	lower := strings.ToLower(text)

	for _, kw := range advancedKeywords {
		if strings.Contains(lower, kw) {
			return models.DifficultyAdvanced
		}
	}
	for _, kw := range beginnerKeywords {
		if strings.Contains(lower, kw) {
			return models.DifficultyBeginner
		}
	}
	return models.DifficultyIntermediate
}

// Gövdenin ilk boş olmayan satırından başlık türetir (en fazla 500 karakter)
func deriveTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > 500 {
			return string(runes[:497]) + "..."
		}
		return line
	}
	return ""
}

type marker struct {
	start, end int
	isRange    bool
	numA, numB int
}

// collectMarkers her iki deseni de bulur ve konuma göre sıralar.
// Tekil desen aralık başlıklarıyla eşleşemez çünkü numaradan hemen sonra
// iki nokta üst üste ister; aralıkta ise numarayı tire izler.
func collectMarkers(content string) ([]marker, int) {
	var markers []marker
	errored := 0

	for _, m := range singleQuestionRe.FindAllStringSubmatchIndex(content, -1) {
		num, err := strconv.Atoi(content[m[4]:m[5]])
		if err != nil {
			log.Printf("Soru numarası çözümlenemedi: %v", err)
			errored++
			continue
		}
		markers = append(markers, marker{start: m[0], end: m[1], numA: num})
	}

	for _, m := range rangeQuestionRe.FindAllStringSubmatchIndex(content, -1) {
		numA, errA := strconv.Atoi(content[m[4]:m[5]])
		numB, errB := strconv.Atoi(content[m[6]:m[7]])
		if errA != nil || errB != nil {
			log.Printf("Aralık numaraları çözümlenemedi")
			errored++
			continue
		}
		if numB < numA {
			log.Printf("Geçersiz soru aralığı: Q%d-Q%d", numA, numB)
			errored++
			continue
		}
		markers = append(markers, marker{start: m[0], end: m[1], isRange: true, numA: numA, numB: numB})
	}

	sort.Slice(markers, func(i, j int) bool { return markers[i].start < markers[j].start })
	return markers, errored
}

// ParseQuestions markdown metnini soru adaylarına çevirir; veritabanına dokunmaz.
// Tek tek çözümlenemeyen kayıtlar atlanır ve sayısı ikinci değerde döner.
func ParseQuestions(content string) ([]ParsedQuestion, int) {
	markers, errored := collectMarkers(content)

	var questions []ParsedQuestion
	for i, mk := range markers {
		bodyEnd := len(content)
		if i+1 < len(markers) {
			bodyEnd = markers[i+1].start
		}
		body := strings.TrimSpace(content[mk.end:bodyEnd])

		if !mk.isRange {
			title := deriveTitle(body)
			if title == "" {
				log.Printf("Q%d için başlık türetilemedi, kayıt atlanıyor", mk.numA)
				errored++
				continue
			}
			questions = append(questions, ParsedQuestion{
				Number:     mk.numA,
				Title:      title,
				Content:    body,
				Difficulty: ClassifyDifficulty(body),
			})
			continue
		}

		// Aralık: başlık metni başlık satırında, gövde sonraki satırlarda
		titleBase := body
		shared := ""
		if idx := strings.IndexByte(body, '\n'); idx >= 0 {
			titleBase = strings.TrimSpace(body[:idx])
			shared = strings.TrimSpace(body[idx+1:])
		}
		if titleBase == "" {
			titleBase = fmt.Sprintf("Q%d-Q%d", mk.numA, mk.numB)
		}
		difficulty := ClassifyDifficulty(titleBase + "\n" + shared)

		for n := mk.numA; n <= mk.numB; n++ {
			title := fmt.Sprintf("%s (Part %d)", titleBase, n-mk.numA+1)
			runes := []rune(title)
			if len(runes) > 500 {
				title = string(runes[:497]) + "..."
			}
			questions = append(questions, ParsedQuestion{
				Number:     n,
				Title:      title,
				Content:    shared,
				Difficulty: difficulty,
			})
		}
	}

	return questions, errored
}

// ImportFile tek bir markdown dosyasını verilen kategoriye aktarır.
// Var olan soru numaraları (kategori farketmeksizin) atlanır, hata sayılmaz.
func ImportFile(ctx context.Context, path string, categoryID int) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Success: false, Message: fmt.Sprintf("Dosya okunamadı: %v", err)}
	}

	parsed, errored := ParseQuestions(string(data))

	pool := db.GetPool()

	// Tablodaki mevcut soru numaralarını al
	rows, err := pool.Query(ctx, "SELECT question_number FROM questions")
	if err != nil {
		return ImportResult{Errored: errored, Success: false,
			Message: fmt.Sprintf("Mevcut sorular okunamadı: %v", err)}
	}
	existing := make(map[int]bool)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			return ImportResult{Errored: errored, Success: false,
				Message: fmt.Sprintf("Soru numarası okunamadı: %v", err)}
		}
		existing[n] = true
	}
	rows.Close()

	// Tekrarlananları ayıkla (dosya içi tekrarlar dahil)
	skipped := 0
	var toInsert []ParsedQuestion
	for _, q := range parsed {
		if existing[q.Number] {
			skipped++
			continue
		}
		existing[q.Number] = true
		toInsert = append(toInsert, q)
	}

	if len(toInsert) == 0 {
		return ImportResult{Skipped: skipped, Errored: errored, Success: errored == 0}
	}

	// Tüm yeni satırları tek transaction içinde toplu ekle
	tx, err := pool.Begin(ctx)
	if err != nil {
		return ImportResult{Skipped: skipped, Errored: errored, Success: false,
			Message: fmt.Sprintf("Transaction başlatılamadı: %v", err)}
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, q := range toInsert {
		batch.Queue(`
			INSERT INTO questions (question_number, title, content, difficulty, category_id, published, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, CURRENT_TIMESTAMP)`,
			q.Number, q.Title, q.Content, q.Difficulty, categoryID)
	}

	br := tx.SendBatch(ctx, batch)
	for range toInsert {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return ImportResult{Skipped: skipped, Errored: errored, Success: false,
				Message: fmt.Sprintf("Toplu ekleme hatası: %v", err)}
		}
	}
	if err := br.Close(); err != nil {
		return ImportResult{Skipped: skipped, Errored: errored, Success: false,
			Message: fmt.Sprintf("Toplu ekleme kapatma hatası: %v", err)}
	}

	if err := tx.Commit(ctx); err != nil {
		return ImportResult{Skipped: skipped, Errored: errored, Success: false,
			Message: fmt.Sprintf("Transaction commit hatası: %v", err)}
	}

	return ImportResult{Imported: len(toInsert), Skipped: skipped, Errored: errored, Success: errored == 0}
}

// ImportAll sabit dosya eşlemesindeki tüm dosyaları sırayla aktarır.
// Bir dosyanın hatası diğerlerini durdurmaz; toplam sonuç döner.
func ImportAll(ctx context.Context, baseDir string) (map[string]ImportResult, ImportResult) {
	names := make([]string, 0, len(ImportFiles))
	for name := range ImportFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	perFile := make(map[string]ImportResult, len(names))
	total := ImportResult{Success: true}

	for _, name := range names {
		result := ImportFile(ctx, filepath.Join(baseDir, name), ImportFiles[name])
		perFile[name] = result

		total.Imported += result.Imported
		total.Skipped += result.Skipped
		total.Errored += result.Errored
		if !result.Success {
			total.Success = false
			if result.Message != "" {
				if total.Message != "" {
					total.Message += "; "
				}
				total.Message += name + ": " + result.Message
			}
		}
	}

	return perFile, total
}
