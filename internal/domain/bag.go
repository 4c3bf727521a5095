// Package domain contains the core entities and the pure derivation logic
// computed from them. Nothing here touches storage or transport.
package domain

import "time"

// BagStatus is the lifecycle state of a coffee bag.
type BagStatus string

const (
	// BagStatusActive marks a bag currently in rotation.
	BagStatusActive BagStatus = "ACTIVE"
	// BagStatusArchived marks a finished or retired bag. Archived bags keep
	// their brews and remain readable by id.
	BagStatusArchived BagStatus = "ARCHIVED"
)

// Bag represents one bag of coffee being tracked.
type Bag struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"-"`
	CoffeeName string     `json:"coffeeName"`
	Roaster    string     `json:"roaster"`
	Origin     string     `json:"origin,omitempty"`
	Process    string     `json:"process,omitempty"`
	RoastDate  *time.Time `json:"roastDate"`
	Notes      string     `json:"notes,omitempty"`
	Status     BagStatus  `json:"status"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Archived reports whether the bag has been archived.
func (b *Bag) Archived() bool {
	return b.Status == BagStatusArchived
}
