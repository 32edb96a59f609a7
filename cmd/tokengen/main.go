// Command tokengen mints a bearer token for local testing of the API.
//
//	go run ./cmd/tokengen -sub 6f1c2d4e-... -role organizer -ttl 2h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"eventticketing/config"
	"eventticketing/internal/adapters/auth"
	"eventticketing/internal/domain"
)

func main() {
	sub := flag.String("sub", "", "subject id (organizer or participant id; any id for admin)")
	role := flag.String("role", string(domain.RoleAdmin), "organizer, participant or admin")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "tokengen: -sub is required")
		flag.Usage()
		os.Exit(2)
	}
	switch domain.Role(*role) {
	case domain.RoleOrganizer, domain.RoleParticipant, domain.RoleAdmin:
	default:
		fmt.Fprintf(os.Stderr, "tokengen: unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*sub, domain.Role(*role), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
