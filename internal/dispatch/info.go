package dispatch

import "time"

// ServerInfo is the self-description served at the REST root and by the
// JSON-RPC initialize method.
type ServerInfo struct {
	Name             string          `json:"name"`
	Version          string          `json:"version"`
	Description      string          `json:"description"`
	Capabilities     map[string]bool `json:"capabilities"`
	Endpoints        InfoEndpoints   `json:"endpoints"`
	PortfolioBaseURL string          `json:"portfolioBaseUrl"`
	Status           string          `json:"status"`
	Timestamp        string          `json:"timestamp"`
}

// InfoEndpoints enumerates the logical surface by kind.
type InfoEndpoints struct {
	Resources []string `json:"resources"`
	Prompts   []string `json:"prompts"`
	Tools     []string `json:"tools"`
}

// Info returns the server's self-description.
func (d *Dispatcher) Info() ServerInfo {
	return ServerInfo{
		Name:        "Portfolio MCP Server",
		Version:     ServerVersion,
		Description: ServerDescription,
		Capabilities: map[string]bool{
			"resources": true,
			"prompts":   true,
			"tools":     true,
		},
		Endpoints: InfoEndpoints{
			Resources: d.ResourceURIs(),
			Prompts:   d.PromptNames(),
			Tools:     d.toolNames(),
		},
		PortfolioBaseURL: d.upstream.BaseURL(),
		Status:           "operational",
		Timestamp:        d.now().UTC().Format(time.RFC3339),
	}
}
