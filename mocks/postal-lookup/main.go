// A stand-in postal-code lookup service for local wizardd runs. Codes
// outside the table get a 404, which the daemon treats as a lookup failure
// and falls back on its built-in table.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
)

type location struct {
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

var pincodes = map[string]location{
	"110001": {City: "New Delhi", District: "Central Delhi", State: "Delhi", Country: "India"},
	"400001": {City: "Mumbai", District: "Mumbai City", State: "Maharashtra", Country: "India"},
	"560001": {City: "Bengaluru", District: "Bengaluru Urban", State: "Karnataka", Country: "India"},
	"600001": {City: "Chennai", District: "Chennai", State: "Tamil Nadu", Country: "India"},
	"700001": {City: "Kolkata", District: "Kolkata", State: "West Bengal", Country: "India"},
	"390001": {City: "Vadodara", District: "Vadodara", State: "Gujarat", Country: "India"},
	"500001": {City: "Hyderabad", District: "Hyderabad", State: "Telangana", Country: "India"},
}

func lookup(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	loc, ok := pincodes[code]
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown pincode"})
		log.Printf("pincode %s not found", code)
		return
	}
	_ = json.NewEncoder(w).Encode(loc)
}

func main() {
	addr := flag.String("addr", ":8082", "listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pincodes/{code}", lookup)

	log.Printf("mock postal lookup listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}
