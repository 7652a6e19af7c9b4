package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/cvhelper-mcp/internal/cvhelper"
	"github.com/ironsheep/cvhelper-mcp/internal/ocr"
	"github.com/ironsheep/cvhelper-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cvhelper-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Backend:    %s\n", cvhelper.Backend())
			return
		case "--help", "-h", "help":
			fmt.Println("cvhelper-mcp - MCP server for computer-vision helpers")
			fmt.Println()
			fmt.Println("Usage: cvhelper-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CVHELPER_MCP_LOG_LEVEL=debug        Enable debug logging")
			fmt.Printf("  CVHELPER_MCP_OCR_LANG=%-13s Default OCR language\n", ocr.DefaultLanguage)
			fmt.Printf("  CVHELPER_MCP_MAX_LINE_BYTES=%-7d Largest accepted request line\n", server.DefaultMaxLineBytes)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Build with -tags gocv to run the operations on OpenCV.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	server.Version = Version
	cfg := server.ConfigFromEnv()
	if cfg.Debug {
		log.Printf("cvhelper-mcp v%s (built %s, commit %s), tesseract %s", Version, BuildTime, GitCommit, ocr.Version())
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
