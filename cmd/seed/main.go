package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/forgo/agora/api/internal/config"
	"github.com/forgo/agora/api/internal/service"
	"github.com/forgo/agora/api/internal/store"
)

func main() {
	users := flag.Int("users", 5, "Number of users to create")
	posts := flag.Int("posts", 5, "Posts per user")
	admins := flag.Int("admins", 1, "How many of the users are admins")
	password := flag.String("password", "", "Password for every seeded user (default: testpass123)")
	prefix := flag.String("prefix", "seed_", "Email prefix for seeded users")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database.StoreConfig(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	result, err := service.NewSeederService(st.Users, st.Posts).Seed(ctx, service.SeedRequest{
		Users:        *users,
		PostsPerUser: *posts,
		Admins:       *admins,
		Password:     *password,
		Prefix:       *prefix,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d users and %d posts in %dms (password: %s)\n",
		len(result.Users), result.Posts, result.Duration, result.Password)
	for _, email := range result.Users {
		fmt.Println("  " + email)
	}
}
