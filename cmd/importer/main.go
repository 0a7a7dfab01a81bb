package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"interviewapp/db"
	"interviewapp/services"
)

func main() {
	dir := flag.String("dir", "data", "markdown dosyalarının bulunduğu dizin")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "kullanım: importer [-dir <dizin>] import|verify|gaps")
		os.Exit(2)
	}

	if err := db.Connect(); err != nil {
		log.Fatal("Could not initialize database connection pool:", err)
	}
	defer db.GetPool().Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Could not migrate database schema:", err)
	}

	ctx := context.Background()

	switch flag.Arg(0) {
	case "import":
		runImport(ctx, *dir)
	case "verify":
		runVerify(ctx)
	case "gaps":
		runGaps(ctx)
	default:
		fmt.Fprintf(os.Stderr, "bilinmeyen komut: %s\n", flag.Arg(0))
		os.Exit(2)
	}
}

func runImport(ctx context.Context, dir string) {
	perFile, total := services.ImportAll(ctx, dir)

	names := make([]string, 0, len(perFile))
	for name := range perFile {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := perFile[name]
		fmt.Printf("%-32s eklenen=%d atlanan=%d hatalı=%d", name, r.Imported, r.Skipped, r.Errored)
		if r.Message != "" {
			fmt.Printf("  (%s)", r.Message)
		}
		fmt.Println()
	}

	fmt.Printf("\nTOPLAM: eklenen=%d atlanan=%d hatalı=%d\n", total.Imported, total.Skipped, total.Errored)
	if !total.Success {
		fmt.Println("İçe aktarma hatalarla tamamlandı")
		os.Exit(1)
	}
	fmt.Println("İçe aktarma başarıyla tamamlandı")
}

func runVerify(ctx context.Context) {
	pool := db.GetPool()

	// Kategori bazında soru sayıları
	rows, err := pool.Query(ctx, `
		SELECT c.name, COUNT(q.id)
		FROM categories c
		LEFT JOIN questions q ON q.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.display_order`)
	if err != nil {
		log.Fatal("Kategori sayıları okunamadı:", err)
	}

	fmt.Println("Kategoriye göre soru sayıları:")
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			log.Fatal("Satır okunamadı:", err)
		}
		fmt.Printf("  %-32s %d\n", name, count)
	}
	rows.Close()

	// Zorluk bazında soru sayıları
	rows, err = pool.Query(ctx, `
		SELECT difficulty, COUNT(*)
		FROM questions
		GROUP BY difficulty
		ORDER BY difficulty`)
	if err != nil {
		log.Fatal("Zorluk sayıları okunamadı:", err)
	}

	fmt.Println("\nZorluğa göre soru sayıları:")
	for rows.Next() {
		var difficulty string
		var count int
		if err := rows.Scan(&difficulty, &count); err != nil {
			log.Fatal("Satır okunamadı:", err)
		}
		fmt.Printf("  %-32s %d\n", difficulty, count)
	}
	rows.Close()

	var total int
	var minNum, maxNum *int
	err = pool.QueryRow(ctx,
		"SELECT COUNT(*), MIN(question_number), MAX(question_number) FROM questions").
		Scan(&total, &minNum, &maxNum)
	if err != nil {
		log.Fatal("Toplam sayılar okunamadı:", err)
	}

	fmt.Printf("\nToplam soru: %d\n", total)
	if minNum != nil && maxNum != nil {
		fmt.Printf("Soru numarası aralığı: %d - %d\n", *minNum, *maxNum)
	}
}

func runGaps(ctx context.Context) {
	pool := db.GetPool()

	rows, err := pool.Query(ctx, "SELECT question_number FROM questions ORDER BY question_number")
	if err != nil {
		log.Fatal("Soru numaraları okunamadı:", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			log.Fatal("Satır okunamadı:", err)
		}
		numbers = append(numbers, n)
	}

	if len(numbers) == 0 {
		fmt.Println("Veritabanında soru yok")
		return
	}

	// Gözlenen aralıkta eksik numaraları bul
	existing := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		existing[n] = true
	}

	var missing []int
	for n := numbers[0]; n <= numbers[len(numbers)-1]; n++ {
		if !existing[n] {
			missing = append(missing, n)
		}
	}

	fmt.Printf("Aralık %d - %d, eksik numara sayısı: %d\n",
		numbers[0], numbers[len(numbers)-1], len(missing))
	for _, n := range missing {
		fmt.Printf("  Q%d\n", n)
	}
}
