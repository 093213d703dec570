package domain

import "time"

// Shop is an installed store. The access token is written by the platform
// layer during installation and read by the catalog reader.
type Shop struct {
	ID          string    `json:"id"`
	Domain      string    `json:"domain"`
	AccessToken string    `json:"-"`
	Scopes      []string  `json:"scopes,omitempty"`
	InstalledAt time.Time `json:"installed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
