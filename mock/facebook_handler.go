package main

import (
	"encoding/json"
	"net/http"
)

// FacebookTokenHandler simulates the Graph API token endpoint, which
// answers text/plain key=value pairs instead of JSON.
// Append ?mode=no-expiry or ?mode=garbage to exercise the other shapes.
func FacebookTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form", http.StatusBadRequest)
		return
	}

	if r.PostForm.Get("code") == "" || r.PostForm.Get("client_id") == "" {
		http.Error(w, "missing code or client_id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	switch r.URL.Query().Get("mode") {
	case "no-expiry":
		w.Write([]byte("access_token=mock-fb-token"))
	case "garbage":
		w.Write([]byte("oops=nope"))
	default:
		w.Write([]byte("access_token=mock-fb-token&expires=3600"))
	}
}

type facebookProfile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Email     string           `json:"email,omitempty"`
	Picture   *facebookPicture `json:"picture,omitempty"`
}

type facebookPicture struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// FacebookProfileHandler simulates Graph /me. Requests without a token
// get the embedded error object Facebook uses, with a 200 status.
func FacebookProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("access_token") != "mock-fb-token" {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"type":    "OAuthException",
				"message": "Invalid OAuth access token",
			},
		})
		return
	}

	profile := facebookProfile{
		ID:        "100000000000001",
		Name:      "Mock User",
		FirstName: "Mock",
		LastName:  "User",
		Email:     "mock.user@example.com",
	}
	pic := &facebookPicture{}
	pic.Data.URL = "https://cdn.example.com/mock.jpg"
	profile.Picture = pic

	json.NewEncoder(w).Encode(profile)
}
