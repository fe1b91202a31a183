// Package token models the memory-token records behind tokens.json and the
// SF_ pseudo-fields embedded in element description text.
//
// The SF_ fields are ad hoc `KEY: [value]` tags inside a free-text field.
// Parsing them by regex is inherently fragile; they survive here because the
// upstream database schema embeds them, and the field names plus
// null-vs-absent semantics must be preserved exactly for the front-end and
// scanner firmware that consume tokens.json.
package token

import (
	"regexp"
	"strconv"
	"strings"
)

// MemoryTokenTypes are the element Basic Types included in tokens.json.
var MemoryTokenTypes = []string{
	"Memory Token Image",
	"Memory Token Audio",
	"Memory Token Video",
	"Memory Token Audio + Image",
}

// Record is one tokens.json entry. Field names and null-vs-absent semantics
// are a compatibility contract with the front-end and the scanner firmware.
type Record struct {
	Image           *string `json:"image"`
	Audio           *string `json:"audio"`
	Video           *string `json:"video"`
	ProcessingImage *string `json:"processingImage"`
	RFID            string  `json:"SF_RFID"`
	ValueRating     *int    `json:"SF_ValueRating"`
	MemoryType      *string `json:"SF_MemoryType"`
	Group           string  `json:"SF_Group"`
}

// SFFields holds the parsed SF_ tags from a description.
type SFFields struct {
	RFID        string // lowercased; "" when absent
	ValueRating *int
	MemoryType  *string
	Group       string // "" default, never null
	Summary     *string
}

var (
	rfidPattern    = regexp.MustCompile(`(?i)SF_RFID:\s*\[([^\]]*)\]`)
	ratingPattern  = regexp.MustCompile(`(?i)SF_ValueRating:\s*\[([^\]]*)\]`)
	memTypePattern = regexp.MustCompile(`(?i)SF_MemoryType:\s*\[([^\]]*)\]`)
	groupPattern   = regexp.MustCompile(`(?i)SF_Group:\s*\[([^\]]*)\]`)
	summaryPattern = regexp.MustCompile(`(?i)SF_Summary:\s*\[([^\]]*)\]`)

	groupMultPattern = regexp.MustCompile(`(?i)\(x(\d+)\)`)
)

// ParseSFFields extracts the SF_ tags from element description text. A
// malformed rating parses as absent, not as an error.
func ParseSFFields(description string) SFFields {
	var sf SFFields

	if m := rfidPattern.FindStringSubmatch(description); m != nil {
		sf.RFID = strings.ToLower(strings.TrimSpace(m[1]))
	}
	if m := ratingPattern.FindStringSubmatch(description); m != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(m[1])); err == nil {
			sf.ValueRating = &n
		}
	}
	if m := memTypePattern.FindStringSubmatch(description); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			sf.MemoryType = &v
		}
	}
	if m := groupPattern.FindStringSubmatch(description); m != nil {
		sf.Group = strings.TrimSpace(m[1])
	}
	if m := summaryPattern.FindStringSubmatch(description); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			sf.Summary = &v
		}
	}

	return sf
}

// DisplayText returns the free text before the first SF_ tag. Text that
// starts directly with an SF_ tag is returned whole.
func DisplayText(description string) string {
	if idx := strings.Index(description, "SF_"); idx > 0 {
		return strings.TrimSpace(description[:idx])
	}
	return strings.TrimSpace(description)
}

// IsMemoryToken reports whether a Basic Type names a memory-token variant.
func IsMemoryToken(basicType string) bool {
	return strings.Contains(basicType, "Memory Token")
}

// Scoring configuration, mirrored from the game backend.
var (
	baseValues = map[int]int{
		1: 100,
		2: 500,
		3: 1000,
		4: 5000,
		5: 10000,
	}
	typeMultipliers = map[string]float64{
		"Personal":  1.0,
		"Business":  3.0,
		"Technical": 5.0,
	}
)

// PointValue computes a token's point value from its rating and memory type.
// A missing or out-of-range rating counts as 1; a missing or unknown type as
// Personal.
func PointValue(rating *int, memoryType *string) int {
	r := 1
	if rating != nil {
		if _, ok := baseValues[*rating]; ok {
			r = *rating
		}
	}

	mult := 1.0
	if memoryType != nil {
		if m, ok := typeMultipliers[*memoryType]; ok {
			mult = m
		}
	}

	return int(float64(baseValues[r]) * mult)
}

// GroupMultiplier extracts the completion multiplier from a group field like
// "Marcus Sucks (x2)". Fields without a multiplier suffix yield 1.
func GroupMultiplier(group string) int {
	if m := groupMultPattern.FindStringSubmatch(group); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}

// GroupName strips the multiplier suffix from a group field. Returns "" for
// an empty field.
func GroupName(group string) string {
	name := groupMultPattern.ReplaceAllString(group, "")
	return strings.TrimSpace(name)
}
