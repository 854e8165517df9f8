package recovery

import "regwizard/internal/forms"

// Sanitization is a fixed field-name table, not a heuristic: one-time
// secrets are dropped outright, quasi-identifiers are masked down to a
// recognizable suffix. New sensitive fields must be added here explicitly.
var (
	droppedFields = map[string]struct{}{
		"otp":             {},
		"password":        {},
		"confirmPassword": {},
	}
	maskedFields = map[string]struct{}{
		"aadhaarNumber": {},
	}
)

const maskPrefix = "XXXX-XXXX-"

// Sanitize returns a copy of form with secret fields removed and masked
// fields reduced to the mask prefix plus their last four characters. The
// input is never mutated.
func Sanitize(form forms.Data) forms.Data {
	out := make(forms.Data, len(form))
	for k, v := range form {
		if _, drop := droppedFields[k]; drop {
			continue
		}
		if _, mask := maskedFields[k]; mask {
			out[k] = maskValue(v)
			continue
		}
		out[k] = forms.CloneValue(v)
	}
	return out
}

// maskValue keeps the last four characters of string values. Anything too
// short to keep a suffix, or not a string at all, masks entirely.
func maskValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return maskPrefix
	}
	r := []rune(s)
	if len(r) < 4 {
		return maskPrefix
	}
	return maskPrefix + string(r[len(r)-4:])
}
