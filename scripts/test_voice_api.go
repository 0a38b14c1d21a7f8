package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api/voice/v1"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func runAgent(transcript string) map[string]interface{} {
	resp, body, err := sendRequest("POST", "/agent", map[string]interface{}{
		"transcript": transcript,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var agentResp map[string]interface{}
	json.Unmarshal(body, &agentResp)
	prettyPrint(agentResp)
	return agentResp
}

func main() {
	color.Cyan("🚀 Starting Voice Agent API Test\n")

	// 1. Health
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "/health", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2. Calculator (word operators)
	color.Yellow("\n2. Agent: spoken arithmetic")
	runAgent("how much is fourteen plus seven")

	// 3. Note save + list
	color.Yellow("\n3. Agent: save a note")
	runAgent("remember to buy oat milk")

	color.Yellow("\n4. Agent: list notes")
	runAgent("list notes")

	// 5. Search
	color.Yellow("\n5. Agent: wikipedia lookup")
	searchResp := runAgent("search for Ada Lovelace")

	// 6. Continuation (if the search answer was truncated)
	if data, ok := searchResp["data"].(map[string]interface{}); ok {
		if contID, ok := data["continuation_id"].(string); ok && contID != "" {
			color.Yellow("\n6. Agent: resume truncated answer")
			resp, body, err := sendRequest("POST", "/agent/continue", map[string]interface{}{
				"continuation_id": contID,
			})
			if err != nil {
				color.Red("Failed: %v", err)
				os.Exit(1)
			}
			color.Green("Status: %s", resp.Status)
			var contResp map[string]interface{}
			json.Unmarshal(body, &contResp)
			prettyPrint(contResp)
		}
	}

	// 7. Echo fallback
	color.Yellow("\n7. Agent: echo fallback")
	runAgent("good morning")

	color.Cyan("\n✅ Done")
}
