package apiclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/wordledger/wordledger/internal/model"
)

// SavedMarker is the text the API puts in a create response message when
// the word was stored.
const SavedMarker = "saved successfully"

// LoginResponse is the body of POST /api/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// TimeResponse is the body of GET /api/time.
type TimeResponse struct {
	Time string `json:"time"`
}

// CreateWordRequest is the body of POST /api/words.
type CreateWordRequest struct {
	Text string `json:"text"`
}

// CreateWordResponse is the validated body of POST /api/words.
type CreateWordResponse struct {
	Message string `json:"message"`
	Word    string `json:"word"`
}

// Login obtains an access token. No credentials are sent.
func (c *Client) Login(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "", nil, "api", "login")
	if err != nil {
		return "", err
	}

	status, body, err := c.do(req, OpLogin)
	if err != nil {
		return "", err
	}

	var payload LoginResponse
	if err := decode(OpLogin, status, body, &payload); err != nil {
		if !isSuccess(status) {
			return "", &Error{Op: OpLogin, Kind: KindHTTP, StatusCode: status}
		}
		return "", err
	}
	if payload.AccessToken == "" {
		if !isSuccess(status) {
			return "", &Error{Op: OpLogin, Kind: KindHTTP, StatusCode: status, Message: serverMessage(body)}
		}
		return "", missingField(OpLogin, status, "access_token")
	}

	return payload.AccessToken, nil
}

// Time fetches the server time. Only HTTP 200 counts as success.
func (c *Client) Time(ctx context.Context, token string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, token, nil, "api", "time")
	if err != nil {
		return "", err
	}

	status, body, err := c.do(req, OpTime)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &Error{Op: OpTime, Kind: KindHTTP, StatusCode: status, Message: serverMessage(body)}
	}

	var payload struct {
		Time *string `json:"time"`
	}
	if err := decode(OpTime, status, body, &payload); err != nil {
		return "", err
	}
	if payload.Time == nil {
		return "", missingField(OpTime, status, "time")
	}

	return *payload.Time, nil
}

// ListWords fetches the full word collection in server order.
func (c *Client) ListWords(ctx context.Context, token string) ([]model.WordEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, token, nil, "api", "words")
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(req, OpListWords)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &Error{Op: OpListWords, Kind: KindHTTP, StatusCode: status, Message: serverMessage(body)}
	}

	var entries []model.WordEntry
	if err := decode(OpListWords, status, body, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.WordEntry{}
	}

	return entries, nil
}

// CreateWord submits text. Success is decided by the response message
// containing SavedMarker, not by the status code. A message without the
// marker is returned as a KindApplication error carrying that message.
func (c *Client) CreateWord(ctx context.Context, token, text string) (*CreateWordResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, token, CreateWordRequest{Text: text}, "api", "words")
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(req, OpCreateWord)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Message *string `json:"message"`
		Word    *string `json:"word"`
	}
	if err := decode(OpCreateWord, status, body, &payload); err != nil {
		if !isSuccess(status) {
			return nil, &Error{Op: OpCreateWord, Kind: KindHTTP, StatusCode: status}
		}
		return nil, err
	}
	if payload.Message == nil {
		if !isSuccess(status) {
			return nil, &Error{Op: OpCreateWord, Kind: KindHTTP, StatusCode: status, Message: serverMessage(body)}
		}
		return nil, missingField(OpCreateWord, status, "message")
	}

	if !strings.Contains(*payload.Message, SavedMarker) {
		return nil, &Error{
			Op:         OpCreateWord,
			Kind:       KindApplication,
			StatusCode: status,
			Message:    *payload.Message,
		}
	}

	resp := &CreateWordResponse{Message: *payload.Message, Word: text}
	if payload.Word != nil {
		resp.Word = *payload.Word
	}

	return resp, nil
}

// DeleteWord removes the word with the given id. Only HTTP 204 counts as
// success; any other status, 2xx included, is a KindHTTP error.
func (c *Client) DeleteWord(ctx context.Context, token string, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, token, nil, "api", "words", strconv.FormatInt(id, 10))
	if err != nil {
		return err
	}

	status, body, err := c.do(req, OpDeleteWord)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &Error{Op: OpDeleteWord, Kind: KindHTTP, StatusCode: status, Message: serverMessage(body)}
	}

	return nil
}
