// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// LoginResponse is the body of POST /api/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// TimeResponse is the body of GET /api/time.
type TimeResponse struct {
	Time string `json:"time"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateWordResponse is the 201 body of POST /api/words.
type CreateWordResponse struct {
	Message string `json:"message"`
	Word    string `json:"word"`
}

// Messages shared with clients. Clients detect a saved word by the
// "saved successfully" substring of WordSaved.
const (
	WordSaved       = "Word saved successfully"
	WordMissingText = "Missing 'text' field in request"
	WordNotSaved    = "Could not save word (possibly duplicate or DB error)"
	WordNotFound    = "Word not found"
	InvalidWordID   = "Invalid word id"
)
