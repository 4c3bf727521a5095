// Package main provides a tool to seed the database with sample brewing data.
//
// This creates a handful of coffee bags with brew histories so the feed,
// listing, and analytics endpoints have something to show during development.
// It also prints a dev access token for the seeded user.
//
// Usage:
//
//	DATA_PATH=~/BrewLog go run ./cmd/seed
//	DATA_PATH=~/BrewLog go run ./cmd/seed --user user-demo
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/brewlogapp/brewlog-server/internal/auth"
	"github.com/brewlogapp/brewlog-server/internal/service"
	"github.com/brewlogapp/brewlog-server/internal/store/sqlite"
)

var seedUser = flag.String("user", "user-guest", "User id to own the seeded bags")

type sampleBag struct {
	coffeeName string
	roaster    string
	origin     string
	process    string
	roastAge   int // days before today
}

var sampleBags = []sampleBag{
	{"Kiamabara AA", "Roundhill", "Kenya", "Washed", 10},
	{"La Palma y El Tucan", "September", "Colombia", "Natural", 5},
	{"Gesha Village Lot 24", "Tim Wendelboe", "Ethiopia", "Washed", 18},
	{"Finca Deborah", "Sey", "Panama", "Carbonic Maceration", 2},
}

var sampleMethods = []string{"V60", "Aeropress", "Kalita Wave", "French Press"}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/BrewLog")
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataPath, "brewlog.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	st, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	bags := service.NewBagService(st, logger)
	brews := service.NewBrewService(st, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	fmt.Printf("Seeding bags for user: %s\n", *seedUser)

	for _, sample := range sampleBags {
		roastDate := now.AddDate(0, 0, -sample.roastAge)

		bag, err := bags.CreateBag(ctx, *seedUser, service.BagInput{
			CoffeeName: sample.coffeeName,
			Roaster:    sample.roaster,
			Origin:     sample.origin,
			Process:    sample.process,
			RoastDate:  &roastDate,
		})
		if err != nil {
			log.Fatalf("Failed to create bag %q: %v", sample.coffeeName, err)
		}

		// 2-5 brews per bag with plausible dial-in numbers
		numBrews := 2 + rng.Intn(4)
		for i := 0; i < numBrews; i++ {
			dose := 14 + rng.Intn(6)
			grind := 18 + rng.Intn(12)
			water := dose*15 + rng.Intn(40)
			rating := float64(rng.Intn(7)+4) / 2 // 2.0 to 5.0
			acidity := rng.Intn(6)
			sweetness := rng.Intn(6)

			_, err := brews.CreateBrew(ctx, bag.ID, *seedUser, service.BrewInput{
				Method:       sampleMethods[rng.Intn(len(sampleMethods))],
				Dose:         &dose,
				GrindSetting: &grind,
				WaterAmount:  &water,
				Rating:       &rating,
				Acidity:      &acidity,
				Sweetness:    &sweetness,
			})
			if err != nil {
				log.Fatalf("Failed to create brew for %q: %v", sample.coffeeName, err)
			}
		}

		fmt.Printf("  %s (%s): %d brews\n", bag.CoffeeName, bag.ID, numBrews)
	}

	// Print a dev token so seeded data is reachable through the API
	key, err := auth.LoadOrGenerateKey(dataPath)
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, 720*time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	token, err := tokens.GenerateAccessToken(*seedUser)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("\nDev access token for %s:\n%s\n", *seedUser, token)
}
