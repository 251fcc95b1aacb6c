// Package torn implements the small part of the Torn v2 api used to track hospital release times.
package torn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://api.torn.com/v2/"
	sectionUser    = "user"
	paramKey       = "key"
	paramID        = "id"
)

// HTTPDoer defines a common interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Param is a single query parameter. Values are sent as is, callers must supply url safe values.
type Param struct {
	Key   string
	Value string
}

// Client performs requests against a fixed api base url. It has no timeout of its own, that is
// up to the supplied HTTPDoer.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

func New(baseURL string, httpClient HTTPDoer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: baseURL, httpClient: httpClient}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// BuildURL appends section to baseURL followed by the params as a query string. The first pair is
// prefixed with ? and the rest with &. Nothing is escaped.
func BuildURL(baseURL string, section string, params []Param) string {
	var builder strings.Builder
	builder.WriteString(baseURL)
	builder.WriteString(section)

	for idx, param := range params {
		if idx == 0 {
			builder.WriteByte('?')
		} else {
			builder.WriteByte('&')
		}

		builder.WriteString(param.Key)
		builder.WriteByte('=')
		builder.WriteString(param.Value)
	}

	return builder.String()
}

// Fetch performs a single GET against section and decodes the result as T. The credential is sent as
// the final key parameter.
//
// The returned error is one of:
//   - an APIError when the api rejected the request
//   - an error wrapping ErrTransport when the api could not be reached or answered with a non 2xx
//     status and a body that could not be understood
//   - an error wrapping ErrDecode when the body matches neither T nor the error envelope
func Fetch[T any](ctx context.Context, client *Client, credential string, section string, params ...Param) (T, error) {
	var empty T

	query := make([]Param, 0, len(params)+1)
	query = append(query, params...)
	query = append(query, Param{Key: paramKey, Value: credential})

	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(client.baseURL, section, query), nil)
	if errReq != nil {
		return empty, errors.Join(errReq, ErrTransport)
	}

	resp, errResp := client.httpClient.Do(req)
	if errResp != nil {
		return empty, errors.Join(errResp, ErrTransport)
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close response body", slog.String("error", err.Error()))
		}
	}(resp.Body)

	body, errBody := io.ReadAll(resp.Body)
	if errBody != nil {
		return empty, errors.Join(errBody, ErrTransport)
	}

	slog.Debug("API response", slog.String("section", section), slog.Int("status_code", resp.StatusCode),
		slog.Int("size", len(body)))

	decoded, errDecode := Decode[T](body)
	if errDecode != nil {
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return empty, errors.Join(fmt.Errorf("unexpected status code: %d", resp.StatusCode), ErrTransport)
		}

		return empty, errDecode
	}

	if decoded.IsError() {
		return empty, Classify(*decoded.Envelope)
	}

	return decoded.Value, nil
}

// Player fetches the current profile state of the player with the given id.
func (c *Client) Player(ctx context.Context, credential string, playerID uint32) (PlayerSnapshot, error) {
	return Fetch[PlayerSnapshot](ctx, c, credential, sectionUser,
		Param{Key: paramID, Value: strconv.FormatUint(uint64(playerID), 10)})
}
