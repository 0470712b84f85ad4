package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (used with -generate)")
	generate := flag.Bool("generate", false, "Generate a new key pair and exit")
	userID := flag.String("user", "", "User ID for the token (defaults to the email)")
	email := flag.String("email", "admin@agora.dev", "Email for the token")
	role := flag.String("role", string(model.UserRoleAdmin), "Role claim: member or admin")
	issuer := flag.String("issuer", "agora.forgo.software", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *generate {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		return
	}

	if !model.UserRole(*role).IsValid() {
		fmt.Fprintf(os.Stderr, "Invalid role %q: must be member or admin\n", *role)
		os.Exit(2)
	}
	if *userID == "" {
		*userID = *email
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys first with: go run ./cmd/token -generate\n")
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{
		UserID: *userID,
		Email:  *email,
		Role:   *role,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"email":        *email,
			"role":         *role,
		})
		return
	}

	expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
	fmt.Println("Token Generated")
	fmt.Println("===============")
	fmt.Printf("Email:    %s\n", *email)
	fmt.Printf("Role:     %s\n", *role)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H 'Authorization: Bearer <token>' http://localhost:8080/v1/boards/1/authority")
}
