// Package sessionstore provides fiber.Storage implementations that keep
// front end sessions and login limiter state outside the process.
package sessionstore
