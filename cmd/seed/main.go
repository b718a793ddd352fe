// Command main runs the database seeder for datablog.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"datablog/internal/bootstrap"
	"datablog/internal/config"
	"datablog/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of demo users to create")
	numPosts := flag.Int("posts", 40, "Number of demo posts to create")
	comments := flag.Int("comments", 5, "Number of comments per demo post")
	clean := flag.Bool("clean", false, "Delete all existing data before seeding")
	fixtures := flag.String("fixtures", "", "YAML fixture file (defaults to the embedded fixtures)")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible demo content")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() {
		if err := rt.Close(ctx); err != nil {
			log.Printf("close runtime: %v", err)
		}
	}()

	fx, err := loadFixtures(*fixtures)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	opts := seed.Options{
		AdminEmail:      cfg.AdminEmail,
		AdminPassword:   cfg.AdminPassword,
		Users:           *numUsers,
		Posts:           *numPosts,
		CommentsPerPost: *comments,
		Clean:           *clean,
		RandSeed:        *randSeed,
	}
	if err := seed.NewSeeder(rt.DB).Run(ctx, fx, opts); err != nil {
		log.Printf("Seeding failed: %v", err)
		return
	}

	log.Printf("Seeding complete. Demo users have the password: %s", seed.DemoPassword)
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.DefaultFixtures()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.LoadFixtures(f)
}
