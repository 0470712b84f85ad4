// Package config loads Agora API configuration from the environment.
//
// An optional .env file is read first; variables already present in the
// process environment take precedence over it.
//
// # Variables
//
//	SERVER_PORT, SERVER_ENV, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT,
//	SERVER_SHUTDOWN_TIMEOUT, CORS_ALLOWED_ORIGINS
//	DB_DRIVER (surrealdb | sqlite | postgres), DB_DSN,
//	DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH, JWT_PUBLIC_KEY_PATH, JWT_EXPIRATION_MINS, JWT_ISSUER
//	RATE_LIMIT (e.g. "100-M")
//	LOG_LEVEL (debug | info | warn | error)
//
// Validate reports every problem at once using errors.Join.
package config
