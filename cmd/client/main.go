// Package main implements the partner operations CLI. It drives the server's
// partner-facing webhook endpoints: reporting a death and pushing an
// insurance feed batch.
package main

import (
	"bytes"
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	apiDeathTrigger  = "/webhooks/death-trigger"
	apiInsuranceSync = "/webhooks/insurance"
)

var (
	version   string
	buildDate string
)

// post sends payload as JSON and prints the pretty-printed response body.
func post(client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Write(raw)
	}
	fmt.Printf("HTTP %d\n%s\n", resp.StatusCode, pretty.String())
	return nil
}

func reportDeath(client *http.Client, baseURL, email, clerkID, deathDate string) error {
	payload := map[string]string{}
	if email != "" {
		payload["email"] = email
	}
	if clerkID != "" {
		payload["clerkUserId"] = clerkID
	}
	if deathDate != "" {
		if _, err := time.Parse(time.RFC3339, deathDate); err != nil {
			return fmt.Errorf("invalid death date %q: %w", deathDate, err)
		}
		payload["deathDate"] = deathDate
	}
	return post(client, baseURL+apiDeathTrigger, payload)
}

func pushFeed(client *http.Client, baseURL, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read feed file: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("parse feed file: %w", err)
	}
	return post(client, baseURL+apiInsuranceSync, payload)
}

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "server base URL")
	email := flag.String("email", "", "deceased owner email (report-death)")
	clerkID := flag.String("user", "", "deceased owner external user ID (report-death)")
	deathDate := flag.String("date", "", "death date, RFC 3339 (report-death, optional)")
	feedFile := flag.String("feed", "", "insurance feed JSON file (sync)")
	flag.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	client := &http.Client{Timeout: 30 * time.Second}

	switch flag.Arg(0) {
	case "report-death":
		if *email == "" && *clerkID == "" {
			log.Fatal("report-death requires -email or -user")
		}
		if err := reportDeath(client, *baseURL, *email, *clerkID, *deathDate); err != nil {
			log.Fatal(err)
		}
	case "sync":
		if *feedFile == "" {
			log.Fatal("sync requires -feed")
		}
		if err := pushFeed(client, *baseURL, *feedFile); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Println("Usage: client [flags] report-death|sync")
		flag.PrintDefaults()
		os.Exit(2)
	}
}
