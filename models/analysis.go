package models

import (
	"time"

	"github.com/google/uuid"
)

// Label is the verdict produced by the classifier for an article.
type Label string

const (
	LabelReal Label = "REAL"
	LabelFake Label = "FAKE"
)

// ExplanationSource records where an explanation came from.
type ExplanationSource string

const (
	SourceRemote   ExplanationSource = "remote"
	SourceFallback ExplanationSource = "fallback"
)

// Explanation is the reasoning attached to a verdict. Text is free-form but
// expected to contain the five labeled sections (Summary, Tone, Credibility,
// Evidence, Conclusion). Reason carries the failure description when Source
// is fallback and is empty otherwise.
type Explanation struct {
	Text   string            `json:"text"`
	Source ExplanationSource `json:"source"`
	Reason string            `json:"reason,omitempty"`
}

// Analysis represents one stored evaluation of an article.
type Analysis struct {
	ID                uuid.UUID         `json:"id"`
	Article           string            `json:"article"`
	Label             Label             `json:"label"`
	ExplanationText   string            `json:"explanation_text"`
	ExplanationSource ExplanationSource `json:"explanation_source"`
	FailureReason     *string           `json:"failure_reason,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}
