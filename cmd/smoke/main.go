// Command smoke exercises a running server end to end.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
)

func main() {
	baseURL := flag.String("url", "http://localhost:5000", "server base URL")
	destination := flag.String("destination", "Rome", "destination to recommend places for")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Minute}

	fmt.Println("1. Health check...")
	if _, ok := send(client, http.MethodGet, *baseURL+"/healthz", nil); !ok {
		fmt.Println("FAILED: health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: health check")

	fmt.Println("2. Top places...")
	body, ok := send(client, http.MethodPost, *baseURL+"/api/top-places", map[string]string{
		"source":        "London",
		"destination":   *destination,
		"departureDate": time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		"returnDate":    time.Now().AddDate(0, 1, 3).Format("2006-01-02"),
		"budget":        "1000 EUR",
		"description":   "history, food and walking tours",
	})
	if !ok {
		fmt.Println("FAILED: top places")
		os.Exit(1)
	}

	var top struct {
		Places []struct {
			Name string `json:"name"`
		} `json:"places"`
	}
	if err := json.Unmarshal(body, &top); err != nil || len(top.Places) == 0 {
		fmt.Printf("FAILED: top places returned nothing usable: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: top places (%d)\n", len(top.Places))

	fmt.Println("3. Event planner...")
	selected := ""
	for i, p := range top.Places {
		if i > 0 {
			selected += ", "
		}
		selected += p.Name
	}
	if _, ok := send(client, http.MethodPost, *baseURL+"/api/event-planner", map[string]string{
		"selectedPlaces": selected,
		"userInput":      "Two travellers, three days, moderate pace.",
	}); !ok {
		fmt.Println("FAILED: event planner")
		os.Exit(1)
	}
	fmt.Println("PASSED: event planner")

	fmt.Println("4. Known destinations...")
	if _, ok := send(client, http.MethodGet, *baseURL+"/api/places", nil); !ok {
		fmt.Println("FAILED: known destinations")
		os.Exit(1)
	}
	fmt.Println("PASSED: known destinations")
}

func send(client *http.Client, method, url string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return respBody, true
}
