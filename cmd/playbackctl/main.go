// Package main implements playbackctl, a small command-line client for
// the Playback API: view a public press kit, try a vault PIN, or
// bootstrap and inspect the editor draft for a token.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

var (
	version   string
	buildDate string
)

func main() {
	baseURL := flag.String("s", "http://localhost:8080", "server base URL")
	token := flag.String("t", "", "identity-provider bearer token (optional)")
	showVersion := flag.Bool("v", false, "print build metadata and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Build version: %s\nBuild date: %s\n", orNA(version), orNA(buildDate))
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	client := &http.Client{}
	switch args[0] {
	case "view":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		get(client, *baseURL+"/"+args[1], "")
	case "unlock":
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		body, _ := json.Marshal(map[string]string{"pin": args[2]})
		post(client, *baseURL+"/"+args[1]+"/unlock", "", body)
	case "bootstrap":
		get(client, *baseURL+"/api/epk", *token)
	case "summary":
		get(client, *baseURL+"/api/epk/summary", *token)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: playbackctl [-s server] [-t token] <command>")
	fmt.Fprintln(os.Stderr, "Commands: view <publicId>, unlock <publicId> <pin>, bootstrap, summary")
}

func get(client *http.Client, url, token string) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	send(client, req, token)
}

func post(client *http.Client, url, token string, body []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	send(client, req, token)
}

func send(client *http.Client, req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(raw))
	}
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
