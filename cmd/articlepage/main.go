package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: loading .env: %v\n", err)
	}

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "fetch":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: articlepage fetch <slug> [html|md|json]")
			os.Exit(1)
		}
		format := "html"
		if len(os.Args) > 3 {
			format = os.Args[3]
		}
		if err := runFetch(os.Stdout, os.Args[2], format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("articlepage %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`articlepage - Article pages from Contentful, built with Go, Echo, and templ

Usage:
  articlepage <command> [arguments]

Commands:
  serve                       Run the web server (default)
  fetch <slug> [html|md|json] Print one article's body or page payloads
  version                     Print the articlepage version
  help                        Show this help message

Configuration is read from the environment and an optional .env file:
  CONTENTFUL_SPACE_ID, CONTENTFUL_ACCESS_TOKEN (required)
  CONTENTFUL_ENVIRONMENT, CONTENTFUL_HOST, CONTENTFUL_LOCALE
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR, SITE_AUTHOR_URL, SITE_LANG
  ADDR, DISQUS_SHORTNAME, FETCH_TIMEOUT, RATE_LIMIT_RPS, RATE_LIMIT_BURST

Examples:
  articlepage serve
  articlepage fetch sample-post md`)
}
