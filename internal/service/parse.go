package service

import "strconv"

// Proposal and vehicle forms arrive with numeric fields as strings. Parsing
// is forgiving: a malformed optional number falls back to its documented
// default instead of failing the whole operation.

func parseIntOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseFloatOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// parseOptionalFloat returns nil for an empty or malformed value.
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
