package torn

import (
	"errors"
	"fmt"
)

const (
	codeIncorrectKey = 2
	codeIncorrectID  = 6
)

var (
	// ErrTransport wraps failures to reach the api or read its response.
	ErrTransport = errors.New("api transport error")
	// ErrDecode wraps responses matching neither the requested shape nor the error envelope.
	ErrDecode = errors.New("unrecognised api response")

	ErrInvalidIdentifier = errors.New("invalid player id")
	ErrInvalidCredential = errors.New("invalid api key")
	ErrUnclassified      = errors.New("unclassified api error")
)

// ErrorKind is the closed set of api rejections the app distinguishes.
type ErrorKind int

const (
	InvalidIdentifier ErrorKind = iota + 1
	InvalidCredential
	Unclassified
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidIdentifier:
		return "invalid_id"
	case InvalidCredential:
		return "invalid_key"
	case Unclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// APIError is a classified api rejection. Use errors.Is with the Err* sentinels to branch
// on the kind, or errors.As to get at the raw code.
type APIError struct {
	Kind    ErrorKind
	Code    int64
	Message string
}

func (e APIError) Error() string {
	switch e.Kind {
	case InvalidIdentifier:
		return ErrInvalidIdentifier.Error()
	case InvalidCredential:
		return ErrInvalidCredential.Error()
	case Unclassified:
		fallthrough
	default:
		if e.Message == "" {
			return fmt.Sprintf("%s: code %d", ErrUnclassified.Error(), e.Code)
		}

		return fmt.Sprintf("%s: code %d: %s", ErrUnclassified.Error(), e.Code, e.Message)
	}
}

func (e APIError) Is(target error) bool {
	switch target { //nolint:errorlint
	case ErrInvalidIdentifier:
		return e.Kind == InvalidIdentifier
	case ErrInvalidCredential:
		return e.Kind == InvalidCredential
	case ErrUnclassified:
		return e.Kind == Unclassified
	default:
		return false
	}
}

// Classify maps an error envelope onto an APIError. The envelope must carry a numeric code, which
// is guaranteed for any envelope produced by Decode. Anything else is a bug and panics.
func Classify(envelope ErrorEnvelope) APIError {
	code, ok := envelope.Code()
	if !ok {
		panic(fmt.Sprintf("torn: classify called without a numeric code: %v", envelope.Error))
	}

	apiErr := APIError{Code: code, Message: envelope.Message()}

	switch code {
	case codeIncorrectID:
		apiErr.Kind = InvalidIdentifier
	case codeIncorrectKey:
		apiErr.Kind = InvalidCredential
	default:
		apiErr.Kind = Unclassified
	}

	return apiErr
}
