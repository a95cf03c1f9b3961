package main

import (
	"fmt"
	"log"
	"time"

	"eventsphere/internal/config"
	"eventsphere/internal/database"
	"eventsphere/internal/utils"
)

func main() {
	fmt.Println("🌱 Seeding database")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create or update the admin user
	hashedPassword, err := utils.HashPassword("Admin@123")
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	userQuery := `
		INSERT INTO users (email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, 'admin', true, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			role = EXCLUDED.role,
			updated_at = NOW()
		RETURNING id`

	var adminID int
	if err := db.DB.QueryRow(userQuery, "admin@example.com", hashedPassword, "Administrator").Scan(&adminID); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	fmt.Printf("✅ Admin user ready (ID: %d)\n", adminID)

	// Seed categories
	categories := []struct {
		Name        string
		Description string
	}{
		{"Webinar", "Online educational sessions"},
		{"Concert", "Live musical performances"},
		{"Workshop", "Interactive training sessions"},
		{"Conference", "Professional Meetings"},
	}

	categoryIDs := make(map[string]int)
	for _, c := range categories {
		var id int
		err := db.DB.QueryRow(`
			INSERT INTO categories (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			RETURNING id`, c.Name, c.Description).Scan(&id)
		if err != nil {
			log.Fatalf("Failed to seed category %s: %v", c.Name, err)
		}
		categoryIDs[c.Name] = id
	}
	fmt.Printf("✅ %d categories ready\n", len(categoryIDs))

	// Seed sample events only when the table is empty
	var eventCount int
	if err := db.DB.QueryRow("SELECT COUNT(*) FROM events").Scan(&eventCount); err != nil {
		log.Fatal("Failed to count events:", err)
	}
	if eventCount > 0 {
		fmt.Println("Events already present, skipping event seed")
		return
	}

	events := []struct {
		Title            string
		Category         string
		TicketPrice      int64 // cents
		AvailableTickets int
		EventDate        time.Time
	}{
		{"C# Fundamentals", "Webinar", 1599, 10, time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC)},
		{"Rock Night Live", "Concert", 3000, 3, time.Date(2025, 2, 20, 19, 0, 0, 0, time.UTC)},
		{"UI/UX Workshop", "Workshop", 2550, 8, time.Date(2025, 2, 25, 14, 0, 0, 0, time.UTC)},
	}

	for _, e := range events {
		_, err := db.DB.Exec(`
			INSERT INTO events (title, description, event_date, ticket_price, available_tickets, category_id, organizer_id, created_at, updated_at)
			VALUES ($1, '', $2, $3, $4, $5, $6, NOW(), NOW())`,
			e.Title, e.EventDate, e.TicketPrice, e.AvailableTickets, categoryIDs[e.Category], adminID)
		if err != nil {
			log.Fatalf("Failed to seed event %s: %v", e.Title, err)
		}
		fmt.Printf("✅ Seeded event: %s\n", e.Title)
	}

	fmt.Println("Seeding complete")
}
