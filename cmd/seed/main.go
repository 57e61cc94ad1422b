// Command main runs the database seeder for datingmeet.
package main

import (
	"flag"
	"log"

	"datingmeet/internal/config"
	"datingmeet/internal/database"
	"datingmeet/internal/seed"
)

func main() {
	numProfiles := flag.Int("profiles", 50, "Number of profiles to create")
	numLikes := flag.Int("likes", 200, "Number of like actions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d profiles, %d likes, clean=%v\n", *numProfiles, *numLikes, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.Run(seed.Options{
		NumProfiles: *numProfiles,
		NumLikes:    *numLikes,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
