package db

// Token represents the user's persisted token pair. A single record exists;
// both fields are always written together by the last successful exchange.
type Token struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// AuthSnapshot holds the only progress flags that survive a restart.
// Full progress is re-hydrated from the server on every process start.
type AuthSnapshot struct {
	ID              uint `gorm:"primaryKey" json:"-"`
	IsAuthenticated bool `json:"is_authenticated"`
	IsAdmin         bool `json:"is_admin"`
}

// Prize is the locally cached copy of a catalogue entry. The backend owns
// the catalogue; this cache is refreshed on each rewards listing.
type Prize struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}
