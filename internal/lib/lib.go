// Package lib groups supporting code that sits outside the request
// layers: background jobs (asynq over Redis) and transactional email
// (Resend).
package lib
