package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
)

// endpointDirectory describes the REST surface, returned on 404 and from
// the server-info endpoint consumers that probe blindly.
var endpointDirectory = map[string]string{
	"/":                "Server info",
	"/resources":       "List all resources",
	"/resource/{name}": "Get specific resource (profile, projects, experience, education, tool-guide, content-coverage)",
	"/prompts":         "List all prompts",
	"/prompt/{name}":   "Get specific prompt (resume-assistant)",
	"/tools":           "List all tools",
	"/tools/call":      "Call a specific tool (POST with {name, arguments})",
}

// NewRESTHandler builds the REST-style HTTP surface over the dispatcher.
// Every response carries permissive CORS headers; handler panics become a
// generic 500 envelope rather than a dropped connection.
func NewRESTHandler(d *dispatch.Dispatcher, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.Get("/", handleInfo(d, logger))
	r.Get("/resources", handleListResources(d, logger))
	r.Get("/resource/{name}", handleReadResource(d, logger))
	r.Get("/prompts", handleListPrompts(d, logger))
	r.Get("/prompt/{name}", handleGetPrompt(d, logger))
	r.Get("/tools", handleListTools(d, logger))
	r.Post("/tools/call", handleCallTool(d, logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, logger, http.StatusNotFound, map[string]any{
			"error":              "Not Found",
			"message":            "The requested endpoint does not exist",
			"availableEndpoints": endpointDirectory,
		})
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.New().String()
			w.Header().Set("X-Request-Id", id)
			logger.Info("request", "id", id, "method", req.Method, "path", req.URL.Path)
			next.ServeHTTP(w, req)
		})
	}
}

func recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic", "path", req.URL.Path, "panic", r)
					writeJSON(w, logger, http.StatusInternalServerError, map[string]any{
						"error":     "Internal Server Error",
						"message":   "An error occurred while processing your request",
						"timestamp": time.Now().UTC().Format(time.RFC3339),
					})
				}
			}()
			next.ServeHTTP(w, req)
		})
	}
}

func handleInfo(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, logger, http.StatusOK, d.Info())
	}
}

func handleListResources(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]any{"resources": d.ListResources()})
	}
}

func handleReadResource(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")

		contents, err := d.ReadResource(req.Context(), "portfolio://"+name)
		if err != nil {
			var nf *dispatch.NotFoundError
			if errors.As(err, &nf) {
				writeJSON(w, logger, http.StatusNotFound, map[string]any{
					"error":              "Resource not found",
					"message":            err.Error(),
					"availableResources": nf.Available,
				})
				return
			}
			writeJSON(w, logger, http.StatusInternalServerError, map[string]any{
				"error":   "Failed to read resource",
				"message": err.Error(),
			})
			return
		}

		writeJSON(w, logger, http.StatusOK, map[string]any{
			"contents": []dispatch.ResourceContents{contents},
		})
	}
}

func handleListPrompts(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]any{"prompts": d.ListPrompts()})
	}
}

func handleGetPrompt(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")

		prompt, err := d.GetPrompt(name)
		if err != nil {
			var nf *dispatch.NotFoundError
			if errors.As(err, &nf) {
				writeJSON(w, logger, http.StatusNotFound, map[string]any{
					"error":            "Prompt not found",
					"message":          err.Error(),
					"availablePrompts": nf.Available,
				})
				return
			}
			writeJSON(w, logger, http.StatusInternalServerError, map[string]any{
				"error":   "Failed to get prompt",
				"message": err.Error(),
			})
			return
		}

		writeJSON(w, logger, http.StatusOK, prompt)
	}
}

func handleListTools(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]any{"tools": d.ListTools(req.Context())})
	}
}

// CallToolRequest is the body of POST /tools/call.
type CallToolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func handleCallTool(d *dispatch.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body CallToolRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, logger, http.StatusBadRequest, map[string]any{
				"error":   "Tool call failed",
				"message": "invalid request body: " + err.Error(),
			})
			return
		}

		// Tool failures, including unknown names, stay in-band so the
		// caller always gets a structured result.
		result := d.CallTool(req.Context(), body.Name, body.Arguments)
		writeJSON(w, logger, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response", "error", err)
	}
}
