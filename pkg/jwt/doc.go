// Package jwt provides JSON Web Token utilities for the Agora API.
//
// Tokens are RS256-signed with github.com/golang-jwt/jwt/v5. A service
// holding only the public key validates tokens minted elsewhere; a
// service holding the private key can also sign (see cmd/token).
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "agora",
//	    ExpirationMins: 60,
//	})
//	token, err := svc.Sign(jwt.Claims{UserID: id, Email: email, Role: "member"})
//
// # Token Validation
//
//	claims, err := svc.Validate(tokenString)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the client to re-authenticate
//	}
//
// Only RS256 is accepted. Tokens must carry an expiration and the
// configured issuer.
package jwt
