package entities

import (
	"fmt"
	"time"
)

// Repository describes a repository owned by the organization being archived.
// It is produced by the source-control lister and never mutated downstream.
type Repository struct {
	Name     string    // Repository name, unique within the owner
	URL      string    // Clone URL (HTTPS)
	PushedAt time.Time // Last push timestamp reported by the provider
	Owner    string    // Owner login (the organization)
}

// FullName returns the "owner/name" identifier of the repository.
func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}
