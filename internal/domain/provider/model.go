package provider

// Provider is a bookable clinician in the directory.
type Provider struct {
	ID          string  `db:"id" json:"id"`
	FirstName   string  `db:"first_name" json:"firstName"`
	LastName    string  `db:"last_name" json:"lastName"`
	Specialty   string  `db:"specialty" json:"specialty"`
	Rating      float64 `db:"rating" json:"rating"`
	ReviewCount int     `db:"review_count" json:"reviewCount"`
	Location    string  `db:"location" json:"location"`
	Room        string  `db:"room" json:"room,omitempty"`
	Bio         string  `db:"bio" json:"bio,omitempty"`
	IsActive    bool    `db:"is_active" json:"isActive"`
}

// SearchFilter narrows the directory listing. A zero value matches every
// active provider.
type SearchFilter struct {
	Query     string
	Specialty string
}
