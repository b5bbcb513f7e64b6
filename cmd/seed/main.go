package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tourwise/internal/catalog"
	"tourwise/internal/shared/config"
	"tourwise/internal/shared/database"
	"tourwise/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Tourwise Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	// Delete in reverse dependency order
	tables := []string{
		"payments",
		"booking_extras",
		"booking_travelers",
		"bookings",
		"extras",
		"packages",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Disable foreign key constraints temporarily
	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	// Re-enable foreign key constraints
	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Seed users first (no dependencies)
	if _, err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Seed tour packages
	if err := s.SeedPackages(); err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}

	// Seed extras catalog
	if err := s.SeedExtras(); err != nil {
		return fmt.Errorf("failed to seed extras: %w", err)
	}

	// Clear Redis so cached catalog data and wizard sessions start fresh
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 3 users: 1 admin (agency staff) and 2 clients
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		phone     string
		role      users.Role
	}{
		{"admin", "Agency", "Admin", "admin@tourwise.com", "+57-601-555-0100", users.RoleAdmin},
		{"client1", "Carlos", "Ramirez", "carlos.ramirez@gmail.com", "+57-310-555-0101", users.RoleUser},
		{"client2", "Maria", "Gonzalez", "maria.gonzalez@gmail.com", "+57-311-555-0102", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Phone:     userData.phone,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedPackages creates the tour package catalog
func (s *Seeder) SeedPackages() error {
	fmt.Println("  🌴 Seeding tour packages...")

	packagesData := []struct {
		name          string
		country       string
		description   string
		durationLabel string
		pricePerAdult float64
		rating        float64
		includes      []string
		imageURL      string
	}{
		{
			name:          "Cartagena Getaway",
			country:       "Colombia",
			description:   "Colonial walled city, Caribbean beaches and island hopping in the Rosario archipelago.",
			durationLabel: "5 days / 4 nights",
			pricePerAdult: 1500.0,
			rating:        4.8,
			includes:      []string{"Round-trip flights", "4-star hotel", "Breakfast", "Walled city tour"},
			imageURL:      "https://images.tourwise.com/packages/cartagena.jpg",
		},
		{
			name:          "Eje Cafetero Experience",
			country:       "Colombia",
			description:   "Coffee farms, the Cocora valley wax palms and hot springs in the coffee triangle.",
			durationLabel: "4 days / 3 nights",
			pricePerAdult: 980.0,
			rating:        4.6,
			includes:      []string{"Round-trip flights", "Hacienda stay", "Coffee farm tour", "Cocora valley hike"},
			imageURL:      "https://images.tourwise.com/packages/eje-cafetero.jpg",
		},
		{
			name:          "Cancun All Inclusive",
			country:       "Mexico",
			description:   "White sand beaches and turquoise water on the Riviera Maya, everything included.",
			durationLabel: "7 days / 6 nights",
			pricePerAdult: 2200.0,
			rating:        4.7,
			includes:      []string{"Round-trip flights", "All-inclusive resort", "Airport transfers"},
			imageURL:      "https://images.tourwise.com/packages/cancun.jpg",
		},
		{
			name:          "Machu Picchu Adventure",
			country:       "Peru",
			description:   "Cusco, the Sacred Valley and a guided visit to the Inca citadel.",
			durationLabel: "6 days / 5 nights",
			pricePerAdult: 1850.0,
			rating:        4.9,
			includes:      []string{"Round-trip flights", "Hotels", "Train to Aguas Calientes", "Guided citadel tour"},
			imageURL:      "https://images.tourwise.com/packages/machu-picchu.jpg",
		},
		{
			name:          "Buenos Aires City Break",
			country:       "Argentina",
			description:   "Tango, steakhouses and the neighborhoods of the Paris of South America.",
			durationLabel: "5 days / 4 nights",
			pricePerAdult: 1320.0,
			rating:        4.4,
			includes:      []string{"Round-trip flights", "Boutique hotel", "City tour", "Tango show"},
			imageURL:      "https://images.tourwise.com/packages/buenos-aires.jpg",
		},
		{
			name:          "Punta Cana Family Escape",
			country:       "Dominican Republic",
			description:   "Family-friendly resort on Bavaro beach with kids club and water park access.",
			durationLabel: "6 days / 5 nights",
			pricePerAdult: 1680.0,
			rating:        4.5,
			includes:      []string{"Round-trip flights", "All-inclusive resort", "Kids club", "Water park"},
			imageURL:      "https://images.tourwise.com/packages/punta-cana.jpg",
		},
	}

	for _, pkgData := range packagesData {
		pkg := catalog.Package{
			ID:            uuid.New(),
			Name:          pkgData.name,
			Country:       pkgData.country,
			Description:   pkgData.description,
			DurationLabel: pkgData.durationLabel,
			PricePerAdult: pkgData.pricePerAdult,
			Rating:        pkgData.rating,
			Includes:      pkgData.includes,
			ImageURL:      pkgData.imageURL,
			Active:        true,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&pkg).Error; err != nil {
			return fmt.Errorf("failed to create package %s: %w", pkg.Name, err)
		}

		fmt.Printf("    ✅ Created package: %s (%s)\n", pkg.Name, pkg.Country)
	}

	return nil
}

// SeedExtras creates the add-on catalog: insurance, car rental and excursions
func (s *Seeder) SeedExtras() error {
	fmt.Println("  🎒 Seeding extras...")

	extrasData := []struct {
		kind        catalog.ExtraKind
		name        string
		description string
		price       float64
	}{
		{catalog.ExtraKindInsurance, "Travel Insurance", "Medical and cancellation coverage for the whole party.", 150.0},
		{catalog.ExtraKindCarRental, "Car Rental", "Compact car for the duration of the trip, full insurance included.", 300.0},
		{catalog.ExtraKindExcursion, "Island Day Trip", "Full-day boat trip with lunch and snorkeling gear.", 80.0},
		{catalog.ExtraKindExcursion, "City Food Tour", "Guided street-food walk through the historic center.", 55.0},
		{catalog.ExtraKindExcursion, "Sunset Sailing", "Two-hour sailboat ride with drinks included.", 95.0},
		{catalog.ExtraKindExcursion, "National Park Hike", "Guided hike with transport and park entrance fees.", 70.0},
	}

	for _, extraData := range extrasData {
		extra := catalog.Extra{
			ID:          uuid.New(),
			Kind:        extraData.kind,
			Name:        extraData.name,
			Description: extraData.description,
			Price:       extraData.price,
			Active:      true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&extra).Error; err != nil {
			return fmt.Errorf("failed to create extra %s: %w", extra.Name, err)
		}

		fmt.Printf("    ✅ Created extra: %s (%s, $%.2f)\n", extra.Name, extra.Kind, extra.Price)
	}

	return nil
}
