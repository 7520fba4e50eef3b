package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/wordledger/wordledger/internal/apiclient"
	"github.com/wordledger/wordledger/internal/session"
)

// Status messages shown to the user.
const (
	MsgSaving       = "Saving..."
	MsgNotLoggedIn  = "Error: Not logged in (missing token)."
	MsgFatalConnect = "Error: Fatal error connecting to API."
	MsgTimedOut     = "Error: The API did not answer in time."
)

var opLabels = map[string]string{
	apiclient.OpLogin:      "Logging in",
	apiclient.OpTime:       "Loading server time",
	apiclient.OpListWords:  "Loading word list",
	apiclient.OpCreateWord: "Saving word",
	apiclient.OpDeleteWord: "Deleting word",
}

// savedMessage is shown after a word was stored.
func savedMessage(word string) string {
	return fmt.Sprintf("Success: %s saved!", word)
}

// describe turns an operation failure into the status message the user
// sees. Every message starts with "Error:".
func describe(op string, err error) string {
	if errors.Is(err, session.ErrNotAuthenticated) {
		return MsgNotLoggedIn
	}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return "Error: " + err.Error()
	}

	label, ok := opLabels[apiErr.Op]
	if !ok {
		label = opLabels[op]
	}

	switch apiErr.Kind {
	case apiclient.KindApplication:
		return "Error: " + apiErr.Message
	case apiclient.KindNetwork:
		if errors.Is(err, context.DeadlineExceeded) {
			return MsgTimedOut
		}
		return MsgFatalConnect
	case apiclient.KindHTTP:
		return fmt.Sprintf("Error: %s failed (status %d).", label, apiErr.StatusCode)
	case apiclient.KindDecode:
		if errors.Is(err, apiclient.ErrMissingField) {
			return fmt.Sprintf("Error: Unexpected response from API (missing %q).", apiErr.Message)
		}
		return "Error: Unexpected response from API (invalid JSON)."
	default:
		return "Error: " + err.Error()
	}
}
