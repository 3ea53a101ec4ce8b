// Package services defines the shared error taxonomy for stage adapters and
// houses the clients that wrap external tools and APIs.
package services
