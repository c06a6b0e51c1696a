package main

import (
	"encoding/json"
	"net/http"
)

// GithubTokenHandler simulates the GitHub token endpoint. GitHub honors
// the Accept header; we always answer JSON since the client asks for it.
func GithubTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.PostForm.Get("code") == "" {
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "bad_verification_code",
			"error_description": "The code passed is incorrect or expired.",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "mock-gh-token",
		"token_type":   "bearer",
		"scope":        "read:user,user:email",
	})
}

// GithubProfileHandler simulates GET /user with Bearer auth.
func GithubProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.Header.Get("Authorization") != "Bearer mock-gh-token" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Bad credentials",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"id":         9100001,
		"login":      "mockuser",
		"name":       "Mock User",
		"email":      "mock.user@example.com",
		"avatar_url": "https://avatars.example.com/u/9100001",
	})
}
