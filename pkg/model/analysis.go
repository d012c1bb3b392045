package model

import (
	"github.com/google/uuid"
)

// ReportID identifies one generated coaching report.
type ReportID string

// NewReportID generates a new unique ReportID
func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// AnalysisResult is the validated output of the coaching evaluation.
// Field order matters: response validation reports the first missing or
// mis-typed field in this order.
type AnalysisResult struct {
	DidWell      []string `json:"didWell"`
	Improvements []string `json:"improvements"`
	FinalScore   float64  `json:"finalScore"`
	CoachingTips []string `json:"coachingTips"`
}

// CallDetails is the call metadata rendered into the report header.
type CallDetails struct {
	CallID   CallID
	Date     string
	SalesRep string
	Customer string
	Duration string
}
