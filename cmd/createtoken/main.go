package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"teamop.dk/bosted/security"
)

func main() {
	userID := flag.String("user", "dev-user", "staff user id")
	email := flag.String("email", "dev@team-op.dk", "staff email")
	name := flag.String("name", "Udvikler", "display name")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("BOSTED_JWT_SECRET")
	if secret == "" {
		log.Fatal("BOSTED_JWT_SECRET is required")
	}

	token, err := security.CreateIdentityToken(security.StaffIdentity{
		UserID: *userID,
		Email:  *email,
		Name:   *name,
	}, []byte(secret), *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
