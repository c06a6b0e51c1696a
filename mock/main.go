package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/facebook/oauth/access_token", FacebookTokenHandler)
	http.HandleFunc("/facebook/me", FacebookProfileHandler)
	http.HandleFunc("/github/login/oauth/access_token", GithubTokenHandler)
	http.HandleFunc("/github/user", GithubProfileHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock provider server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
