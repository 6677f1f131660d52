package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/somesh-bagadiya/sb-omnicore/internal/api"
	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
)

func newHTTPAdapter() *HTTPAdapter {
	logger := discardLogger()
	return NewHTTPAdapter(api.NewRESTHandler(newTestDispatcher(), logger), logger)
}

func TestHTTPAdapter_ServerInfo(t *testing.T) {
	resp, err := newHTTPAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("CORS header not carried into the proxy response")
	}

	var info dispatch.ServerInfo
	if err := json.Unmarshal([]byte(resp.Body), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Name != "Portfolio MCP Server" {
		t.Errorf("name = %q", info.Name)
	}
}

func TestHTTPAdapter_EmptyPathDefaultsToRoot(t *testing.T) {
	resp, err := newHTTPAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHTTPAdapter_UnknownPath(t *testing.T) {
	resp, err := newHTTPAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/nope",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "availableEndpoints") {
		t.Errorf("404 body should include the endpoint directory: %s", resp.Body)
	}
}

func TestHTTPAdapter_CallTool(t *testing.T) {
	resp, err := newHTTPAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/tools/call",
		Body:       `{"name":"get_profile","arguments":{}}`,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}

	var result dispatch.ToolResult
	if err := json.Unmarshal([]byte(resp.Body), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.IsError {
		t.Errorf("unexpected tool error: %s", resp.Body)
	}
}

func TestHTTPAdapter_Base64Body(t *testing.T) {
	body := base64.StdEncoding.EncodeToString([]byte(`{"name":"get_profile","arguments":{}}`))

	resp, err := newHTTPAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/tools/call",
		Body:            body,
		IsBase64Encoded: true,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", resp.StatusCode, resp.Body)
	}
}

func TestHTTPAdapter_BadBase64Body(t *testing.T) {
	resp, err := newHTTPAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/tools/call",
		Body:            "%%% not base64 %%%",
		IsBase64Encoded: true,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
