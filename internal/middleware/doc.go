// Package middleware provides HTTP middleware for the Agora API.
//
// # Available Middleware
//
//   - Auth: bearer token validation, stores the caller as a model.Actor
//   - AdminOnly / AdminAuth: restricts a route to the admin role
//   - RateLimit: fixed-window limiting per user or client IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// Middleware compose with Chain:
//
//	handler := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//	)
//
// # Context Values
//
//   - GetActor(ctx): authenticated caller, if any
//   - GetUserID(ctx): authenticated user ID or ""
//   - GetRequestID(ctx): unique request identifier
package middleware
