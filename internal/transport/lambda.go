// Package transport adapts the dispatcher to AWS Lambda event envelopes:
// a REST-shaped adapter that replays API Gateway events through the chi
// handler, and a JSON-RPC 2.0 adapter for MCP-over-HTTP clients.
package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// HTTPAdapter bridges API Gateway proxy events onto an http.Handler, so
// the Lambda REST surface and the local chi server share one route table.
type HTTPAdapter struct {
	handler http.Handler
	logger  *slog.Logger
}

// NewHTTPAdapter wraps an http.Handler for Lambda invocation.
func NewHTTPAdapter(h http.Handler, logger *slog.Logger) *HTTPAdapter {
	return &HTTPAdapter{handler: h, logger: logger}
}

// Handle converts the event to an http.Request, runs the handler, and
// converts the captured response back to the proxy result shape.
func (a *HTTPAdapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := uuid.New().String()
	a.logger.Info("request", "id", id, "method", event.HTTPMethod, "path", event.Path)

	req, err := eventToRequest(ctx, event)
	if err != nil {
		a.logger.Error("malformed event", "id", id, "error", err)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       fmt.Sprintf(`{"error":"Bad Request","message":%q}`, err.Error()),
		}, nil
	}

	rec := newRecorder()
	a.handler.ServeHTTP(rec, req)

	headers := make(map[string]string, len(rec.header))
	for k, vals := range rec.header {
		headers[k] = strings.Join(vals, ",")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: rec.code,
		Headers:    headers,
		Body:       rec.body.String(),
	}, nil
}

func eventToRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	path := event.Path
	if path == "" {
		path = "/"
	}

	u := url.URL{Path: path}
	if len(event.QueryStringParameters) > 0 {
		q := url.Values{}
		for k, v := range event.QueryStringParameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 body: %w", err)
		}
		body = string(decoded)
	}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range event.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// recorder captures the handler's response for conversion to the Lambda
// result shape.
type recorder struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), code: http.StatusOK}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(code int) { r.code = code }

func (r *recorder) Write(p []byte) (int, error) { return r.body.Write(p) }
