package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
)

// protocolVersion is the MCP protocol revision this server speaks.
const protocolVersion = "2025-03-26"

// Standard JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
)

// rpcRequest is an incoming JSON-RPC 2.0 request or notification.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (r *rpcRequest) isNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// rpcResponse is an outgoing JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RPCAdapter serves MCP over JSON-RPC 2.0 through a single Lambda POST
// entrypoint.
type RPCAdapter struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewRPCAdapter creates a JSON-RPC adapter over the dispatcher.
func NewRPCAdapter(d *dispatch.Dispatcher, logger *slog.Logger) *RPCAdapter {
	return &RPCAdapter{dispatcher: d, logger: logger}
}

// Handle processes one JSON-RPC request. Protocol faults travel as
// JSON-RPC error objects in a 200 response; only the HTTP envelope
// itself can fail harder.
func (a *RPCAdapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := uuid.New().String()
	a.logger.Info("rpc request", "id", id, "method", event.HTTPMethod)

	if event.HTTPMethod == http.MethodOptions {
		return corsResponse(http.StatusOK, ""), nil
	}
	if event.HTTPMethod != http.MethodPost {
		return corsResponse(http.StatusMethodNotAllowed, `{"error":"Method Not Allowed","message":"JSON-RPC requests must be POSTed"}`), nil
	}

	var req rpcRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return a.respondError(nil, codeParseError, "parse error: invalid JSON"), nil
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return a.respondError(req.ID, codeInvalidRequest, "invalid request: jsonrpc must be \"2.0\" and method is required"), nil
	}

	// Notifications get an empty success: no response object is owed.
	if req.isNotification() && (req.Method == "initialized" || req.Method == "notifications/initialized") {
		return corsResponse(http.StatusAccepted, ""), nil
	}

	result, rpcErr := a.dispatchMethod(ctx, &req)
	if rpcErr != nil {
		a.logger.Warn("rpc method failed", "id", id, "method", req.Method, "code", rpcErr.Code, "error", rpcErr.Message)
		return a.respond(rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}), nil
	}
	return a.respond(rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result}), nil
}

// dispatchMethod maps a JSON-RPC method onto the dispatcher. Panics are
// downgraded to -32603 so a bad request can never kill the process.
func (a *RPCAdapter) dispatchMethod(ctx context.Context, req *rpcRequest) (result any, rpcErr *rpcError) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("rpc handler panic", "method", req.Method, "panic", r)
			result = nil
			rpcErr = &rpcError{Code: codeInternal, Message: "internal error"}
		}
	}()

	switch req.Method {
	case "initialize":
		return initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: map[string]any{
				"tools":     map[string]any{},
				"resources": map[string]any{},
				"prompts":   map[string]any{},
			},
			ServerInfo: serverInfo{Name: dispatch.ServerName, Version: dispatch.ServerVersion},
		}, nil

	case "initialized", "notifications/initialized":
		return map[string]any{}, nil

	case "tools/list":
		return map[string]any{"tools": a.dispatcher.ListTools(ctx)}, nil

	case "tools/call":
		var params struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: expected {name, arguments}"}
		}
		return a.dispatcher.CallTool(ctx, params.Name, params.Arguments), nil

	case "resources/list":
		return map[string]any{"resources": a.dispatcher.ListResources()}, nil

	case "resources/read":
		var params struct {
			URI string `json:"uri"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil || params.URI == "" {
			return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: uri is required"}
		}
		contents, err := a.dispatcher.ReadResource(ctx, params.URI)
		if err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
		}
		return map[string]any{"contents": []dispatch.ResourceContents{contents}}, nil

	case "prompts/list":
		return map[string]any{"prompts": a.dispatcher.ListPrompts()}, nil

	case "prompts/get":
		var params struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
			return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: name is required"}
		}
		prompt, err := a.dispatcher.GetPrompt(params.Name)
		if err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
		}
		return map[string]any{"description": prompt.Description, "messages": prompt.Messages}, nil

	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
}

func (a *RPCAdapter) respond(resp rpcResponse) events.APIGatewayProxyResponse {
	body, err := json.Marshal(resp)
	if err != nil {
		a.logger.Error("encoding rpc response", "error", err)
		return corsResponse(http.StatusInternalServerError,
			`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"internal error"}}`)
	}
	return corsResponse(http.StatusOK, string(body))
}

func (a *RPCAdapter) respondError(id json.RawMessage, code int, message string) events.APIGatewayProxyResponse {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return a.respond(rpcResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func corsResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "POST, OPTIONS",
		},
		Body: body,
	}
}
