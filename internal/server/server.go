package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/cvhelper-mcp/internal/cvhelper"
	"github.com/ironsheep/cvhelper-mcp/internal/imaging"
	"github.com/ironsheep/cvhelper-mcp/internal/ocr"
)

// Version is reported in the initialize response. main overrides it with the
// value set by ldflags.
var Version = "dev"

// ProtocolVersion is the MCP protocol revision the server speaks.
const ProtocolVersion = "2024-11-05"

// DefaultMaxLineBytes is the largest request line accepted by default.
const DefaultMaxLineBytes = 1024 * 1024

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel     = "CVHELPER_MCP_LOG_LEVEL"
	EnvOCRLanguage  = "CVHELPER_MCP_OCR_LANG"
	EnvMaxLineBytes = "CVHELPER_MCP_MAX_LINE_BYTES"
)

// Config holds the server settings.
type Config struct {
	// MaxLineBytes limits the size of one JSON-RPC request line.
	MaxLineBytes int

	// OCRLanguage is used by image_ocr when the call names no language.
	OCRLanguage string

	// Debug enables per-request logging.
	Debug bool
}

// ConfigFromEnv builds a Config from the environment, falling back to
// defaults for unset or malformed values.
func ConfigFromEnv() Config {
	cfg := Config{
		MaxLineBytes: DefaultMaxLineBytes,
		OCRLanguage:  ocr.DefaultLanguage,
		Debug:        strings.EqualFold(os.Getenv(EnvLogLevel), "debug"),
	}
	if lang := os.Getenv(EnvOCRLanguage); lang != "" {
		cfg.OCRLanguage = lang
	}
	if v := os.Getenv(EnvMaxLineBytes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("Ignoring %s=%q: want a positive integer", EnvMaxLineBytes, v)
		} else {
			cfg.MaxLineBytes = n
		}
	}
	return cfg
}

// Server handles MCP protocol communication
type Server struct {
	cache *imaging.ImageCache
	cfg   Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeToolFailure    = -32000
)

// New creates a server configured from the environment.
func New() *Server {
	return NewWithConfig(ConfigFromEnv())
}

// NewWithConfig creates a server with explicit settings. Zero fields take
// their defaults.
func NewWithConfig(cfg Config) *Server {
	if cfg.MaxLineBytes <= 0 {
		cfg.MaxLineBytes = DefaultMaxLineBytes
	}
	if cfg.OCRLanguage == "" {
		cfg.OCRLanguage = ocr.DefaultLanguage
	}
	return &Server{
		cache: imaging.NewImageCache(),
		cfg:   cfg,
	}
}

// Run serves requests from stdin and writes responses to stdout
func (s *Server) Run() error {
	if s.cfg.Debug {
		log.Printf("cvhelper-mcp %s: backend %s, OCR language %s", Version, cvhelper.Backend(), s.cfg.OCRLanguage)
	}
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes the responses
// to w until r is exhausted. Lines that are not valid JSON are logged and
// skipped.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// The scanner's limit is the larger of its buffer and max.
	size := 64 * 1024
	if size > s.cfg.MaxLineBytes {
		size = s.cfg.MaxLineBytes
	}
	scanner.Buffer(make([]byte, 0, size), s.cfg.MaxLineBytes)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}
		if s.cfg.Debug {
			log.Printf("<- %s (id %v)", req.Method, req.ID)
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	}

	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}
	return s.errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "cvhelper-mcp",
				"version": Version,
			},
		},
	}
}
