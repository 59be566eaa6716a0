package account

import "time"

// User is the authenticated account behind a session.
type User struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile is a user's public profile document.
type Profile struct {
	DocumentID  string `json:"$id"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

// List is one user list (system or custom).
type List struct {
	DocumentID     string `json:"$id"`
	OwnerID        string `json:"ownerId"`
	Name           string `json:"name"`
	IsSystemList   bool   `json:"isSystemList"`
	SystemListType string `json:"systemListType"`
}

// ListItem is one media membership inside a list. At most one item exists
// per (listId, anilistId) pair; the service enforces this.
type ListItem struct {
	DocumentID string    `json:"$id"`
	OwnerID    string    `json:"ownerId"`
	ListID     string    `json:"listId"`
	AnilistID  int       `json:"anilistId"`
	AddedAt    time.Time `json:"$createdAt"`
}

type documentPage[T any] struct {
	Total     int `json:"total"`
	Documents []T `json:"documents"`
}
