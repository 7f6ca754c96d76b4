// Package domain holds DTOs for history http and service contracts
package domain

import (
	"lingo/internal/core/locale"
)

// DetectionRecord is a single locale detection outcome
type DetectionRecord struct {
	Locale     locale.Locale `json:"locale" validate:"required" example:"en"`
	Source     locale.Source `json:"source" validate:"required,oneof=user geo browser" example:"browser"`
	Confidence float64       `json:"confidence" validate:"min=0,max=1" example:"0.8"`
	Timestamp  int64         `json:"timestamp" validate:"required,min=1" example:"1756600000000"`
}

// DetectionHistory is the keyed record persisted per subject
type DetectionHistory struct {
	Detections      []DetectionRecord `json:"detections"`
	LastUpdated     int64             `json:"last_updated" example:"1756600000000"`
	TotalDetections int               `json:"total_detections" example:"12"`
}

// RecordInput is the input for appending a detection
type RecordInput struct {
	Locale     string  `json:"locale" validate:"required" example:"zh"`
	Source     string  `json:"source" validate:"required,oneof=user geo browser" example:"geo"`
	Confidence float64 `json:"confidence" validate:"min=0,max=1" example:"0.7"`
	Timestamp  int64   `json:"timestamp,omitempty" validate:"omitempty,min=1" example:"1756600000000"`
}

// Snapshot is an exported history with provenance
type Snapshot struct {
	ID         string           `json:"id" example:"6c1a8a2e-9a57-4c4f-9a7e-2f1f4ab3c001"`
	Subject    string           `json:"subject" example:"visitor-42"`
	ExportedAt int64            `json:"exported_at" example:"1756600000000"`
	History    DetectionHistory `json:"history"`
}

// StatsInput filters the detection analytics aggregation
type StatsInput struct {
	Days   int    `json:"days,omitempty" validate:"omitempty,min=1,max=90" example:"7"`
	Locale string `json:"locale,omitempty" validate:"omitempty,alpha" example:"en"`
}

// StatsRow is one daily aggregate bucket
type StatsRow struct {
	Day    string `json:"day" example:"2026-08-31"`
	Locale string `json:"locale" example:"en"`
	Source string `json:"source" example:"browser"`
	Count  uint64 `json:"count" example:"40"`
}
