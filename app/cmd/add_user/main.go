package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/models"
	"github.com/isina-nej/unipath/app/routes/auth"
)

func main() {
	fs := flag.NewFlagSet("add_user", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the HCL configuration file")
	username := fs.String("username", "", "login name")
	email := fs.String("email", "", "contact address")
	password := fs.String("password", "", "initial password")
	fs.Parse(os.Args[1:])

	if *username == "" || *password == "" {
		fmt.Println("Both -username and -password are required")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize database connection
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	// Create user
	user := &models.User{Username: *username, Email: *email, Password: hashed}
	if err := database.CreateUser(ctx, store.DB, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (id %d)\n", user.Username, user.ID)
}
