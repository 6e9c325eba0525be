package suggest

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

type faultKind int

const (
	// faultRetryableStatus: rate limiting (429) or a server-side error (>=500).
	faultRetryableStatus faultKind = iota
	// faultNonRetryableStatus: any other HTTP status, e.g. 400 or 401.
	faultNonRetryableStatus
	// faultConnection: timeout, connection failure, or an error the provider
	// SDK did not attach a status to.
	faultConnection
)

type fault struct {
	kind   faultKind
	status int
}

// classifyFault maps a provider error onto the retry taxonomy. Errors
// without a recognizable HTTP status are treated as connection faults and
// retried, the same way the per-attempt timeout is.
func classifyFault(err error) fault {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return statusFault(gerr.Code)
	}
	var aerr *openai.APIError
	if errors.As(err, &aerr) && aerr.HTTPStatusCode != 0 {
		return statusFault(aerr.HTTPStatusCode)
	}
	var rerr *openai.RequestError
	if errors.As(err, &rerr) && rerr.HTTPStatusCode != 0 {
		return statusFault(rerr.HTTPStatusCode)
	}
	return fault{kind: faultConnection}
}

func statusFault(status int) fault {
	if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return fault{kind: faultRetryableStatus, status: status}
	}
	return fault{kind: faultNonRetryableStatus, status: status}
}
