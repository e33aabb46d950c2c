package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/skillswap/api/internal/config"
	"github.com/skillswap/api/internal/db"
)

func main() {
	email := flag.String("email", "", "Email of the user to promote")
	role := flag.String("role", "ADMIN", "Role to assign: ADMIN or SUPER_ADMIN")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_admin/main.go -email user@example.com [-role SUPER_ADMIN]")
	}
	if *role != "ADMIN" && *role != "SUPER_ADMIN" {
		log.Fatalf("role must be ADMIN or SUPER_ADMIN, got %s", *role)
	}

	cfg := config.Load()
	db.Init(cfg.DatabaseURL)

	ct, err := db.Conn.Exec(context.Background(),
		`UPDATE users SET role = $1, updated_at = NOW() WHERE email = $2`, *role, *email)
	if err != nil {
		log.Fatalf("failed to promote user: %v", err)
	}
	if ct.RowsAffected() == 0 {
		log.Fatalf("no user found with email: %s", *email)
	}

	fmt.Printf("User %s promoted to %s.\n", *email, *role)
}
