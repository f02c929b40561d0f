package client

import "time"

// TokenPair is what the auth endpoints return on success.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

// User mirrors GET /users/me.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// UserProgress mirrors GET /users/me/progress. The test_result field is
// null until the test is completed or a direction is chosen after a skip.
type UserProgress struct {
	Points        int     `json:"points"`
	CompletedTest bool    `json:"completed_test"`
	TestResult    *string `json:"test_result"`
	CompletedGame bool    `json:"completed_game"`
}

// TestOption is one answer option of a quiz question.
type TestOption struct {
	Text string `json:"text"`
	Type string `json:"type"` // 'developer' | 'designer'
}

// TestQuestion mirrors GET /test/questions entries.
type TestQuestion struct {
	ID       int          `json:"id"`
	Question string       `json:"question"`
	Options  []TestOption `json:"options"`
	Order    int          `json:"order"`
}

// TestCompleteResult is the response of POST /test/complete.
type TestCompleteResult struct {
	Message      string `json:"message"`
	Result       string `json:"result"`
	PointsEarned int    `json:"points_earned"`
	TotalPoints  int    `json:"total_points"`
}

// GameCompleteResult is the response of POST /games/complete.
type GameCompleteResult struct {
	PointsEarned int    `json:"points_earned"`
	TotalPoints  int    `json:"total_points"`
	Message      string `json:"message"`
}

// Prize mirrors GET /prizes entries. Points is the claim cost.
type Prize struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Points      int     `json:"points"`
	Quantity    int     `json:"quantity"`
	Description *string `json:"description"`
}

// ClaimedPrize mirrors GET /users/me/claimed-prizes entries.
type ClaimedPrize struct {
	ID        int       `json:"id"`
	PrizeID   int       `json:"prize_id"`
	ClaimedAt time.Time `json:"claimed_at"`
	Prize     Prize     `json:"prize"`
}

// ClaimResult is the response of POST /prizes/{id}/claim.
type ClaimResult struct {
	Message         string `json:"message"`
	RemainingPoints int    `json:"remaining_points"`
	PrizeName       string `json:"prize_name"`
}

// ApplicationForm is the multipart payload of POST /applications.
type ApplicationForm struct {
	FullName   string
	Email      string
	Phone      string
	Direction  string // 'developer' | 'designer'
	Motivation string // optional
	ResumePath string // optional; .pdf, .doc or .docx
}

// Application mirrors GET /applications/me.
type Application struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Direction  string    `json:"direction"`
	Motivation *string   `json:"motivation"`
	ResumePath *string   `json:"resume_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// ApplicationResult is the response of POST /applications.
type ApplicationResult struct {
	Message      string `json:"message"`
	PointsEarned int    `json:"points_earned"`
	TotalPoints  int    `json:"total_points"`
}
