package wizard

import "regwizard/internal/lookup"

// wellKnownPincodes is the built-in fallback for metro head post offices,
// used when the resolver is unavailable or fails with nothing cached. The
// autofilled field stays user-editable, so a miss here is an inconvenience,
// not an error state.
var wellKnownPincodes = map[string]lookup.Location{
	"110001": {City: "New Delhi", District: "Central Delhi", State: "Delhi", Country: "India"},
	"400001": {City: "Mumbai", District: "Mumbai City", State: "Maharashtra", Country: "India"},
	"560001": {City: "Bengaluru", District: "Bengaluru Urban", State: "Karnataka", Country: "India"},
	"600001": {City: "Chennai", District: "Chennai", State: "Tamil Nadu", Country: "India"},
	"700001": {City: "Kolkata", District: "Kolkata", State: "West Bengal", Country: "India"},
}
