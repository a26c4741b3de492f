// Package types provides type definitions for structured data used throughout the job-analysis system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	// UnknownValue replaces any missing scalar field of a job posting
	UnknownValue = "Unknown"
	// NoDetails replaces a missing detail text
	NoDetails = "No details provided."
)

// Input keys recognized in an uploaded job object
const (
	KeyTitle  = "Title"
	KeyPosted = "Posted"
	KeyType   = "Type"
	KeyLevel  = "Level"
	KeySkill  = "Skill"
	KeyDetail = "Detail"
)

// RawJob is one decoded object from an uploaded jobs document.
// Every key is optional and values keep their JSON types.
type RawJob map[string]any

// Job represents a normalized job posting. All fields are always populated.
type Job struct {
	Title  string `json:"title"`
	Posted string `json:"posted"` // relative time phrase, e.g. "3 days"
	Type   string `json:"type"`
	Level  string `json:"level"`
	Skill  string `json:"skill"`
	Detail string `json:"detail"`
}

// NewJob builds a Job from a raw object, substituting placeholders for
// missing or falsy values. It never fails.
func NewJob(raw RawJob) Job {
	return Job{
		Title:  fieldOr(raw, KeyTitle, UnknownValue),
		Posted: fieldOr(raw, KeyPosted, UnknownValue),
		Type:   fieldOr(raw, KeyType, UnknownValue),
		Level:  fieldOr(raw, KeyLevel, UnknownValue),
		Skill:  fieldOr(raw, KeySkill, UnknownValue),
		Detail: fieldOr(raw, KeyDetail, NoDetails),
	}
}

// Details returns the full human-readable description of the posting.
func (j Job) Details() string {
	return fmt.Sprintf("Title: %s\nPosted: %s\nType: %s\nLevel: %s\nSkill: %s\nDetails: %s",
		j.Title, j.Posted, j.Type, j.Level, j.Skill, j.Detail)
}

// fieldOr returns the string form of raw[key], or fallback when the value is
// absent or falsy (null, "", 0, NaN, false).
func fieldOr(raw RawJob, key, fallback string) string {
	value, ok := raw[key]
	if !ok {
		return fallback
	}

	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
		return v
	case bool:
		if !v {
			return fallback
		}
		return "true"
	case float64:
		if v == 0 || math.IsNaN(v) {
			return fallback
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return fallback
		}
		return v.String()
	default:
		// Arrays and objects are truthy; keep their JSON text
		encoded, err := json.Marshal(v)
		if err != nil {
			return fallback
		}
		return string(encoded)
	}
}
