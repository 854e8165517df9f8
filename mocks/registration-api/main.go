// A stand-in registration backend for local wizardd runs and the e2e suite.
// It accepts every step submission except the email "taken@example.com",
// which is rejected so failure paths can be exercised by hand.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
)

type stepRequest struct {
	SessionID string         `json:"sessionId"`
	FormData  map[string]any `json:"formData"`
}

type server struct {
	mu      sync.Mutex
	known   map[string]bool
	counter atomic.Int64
}

func (s *server) submitStep(w http.ResponseWriter, r *http.Request) {
	step := r.PathValue("step")

	var req stepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if req.FormData["email"] == "taken@example.com" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "email already registered",
		})
		log.Printf("step %s rejected for %v", step, req.FormData["email"])
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = fmt.Sprintf("srv_%d", s.counter.Add(1))
	}
	s.mu.Lock()
	s.known[sessionID] = true
	s.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"sessionId": sessionID,
		"message":   fmt.Sprintf("step %s accepted", step),
	})
	log.Printf("step %s accepted as %s (%d fields)", step, sessionID, len(req.FormData))
}

func (s *server) status(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	known := s.known[id]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !known {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown session"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "pending_review"})
}

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	flag.Parse()

	srv := &server{known: make(map[string]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /registration/steps/{step}", srv.submitStep)
	mux.HandleFunc("GET /registration/{id}/status", srv.status)

	log.Printf("mock registration API listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}
