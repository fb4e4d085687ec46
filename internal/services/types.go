package services

import "errors"

// Role is the respondent's employment category.
type Role string

const (
	RoleHourly   Role = "Hourly"
	RoleSalaried Role = "Salaried"
)

// TenureBucket is the respondent's coarse tenure band.
type TenureBucket string

const (
	TenureUnderOneYear TenureBucket = "<1y"
	TenureOneToThree   TenureBucket = "1-3y"
	TenureThreePlus    TenureBucket = "3y+"
)

// Roles returns all roles in canonical order.
func Roles() []Role { return []Role{RoleHourly, RoleSalaried} }

// TenureBuckets returns all tenure buckets in canonical order.
func TenureBuckets() []TenureBucket {
	return []TenureBucket{TenureUnderOneYear, TenureOneToThree, TenureThreePlus}
}

func ValidRole(r Role) bool { return r == RoleHourly || r == RoleSalaried }

func ValidTenure(t TenureBucket) bool {
	return t == TenureUnderOneYear || t == TenureOneToThree || t == TenureThreePlus
}

// Checkin is one persisted weekly submission. Field order mirrors the
// tabular store columns.
type Checkin struct {
	Date             string       `json:"date"` // ISO calendar date, UTC
	PseudoID         string       `json:"user_pseudo_id"`
	Role             Role         `json:"role"`
	TenureBucket     TenureBucket `json:"tenure_bucket"`
	TeamID           string       `json:"team_id"`
	Q1               int          `json:"q1"`
	Q2               int          `json:"q2"`
	Q3               int          `json:"q3"`
	Q4               int          `json:"q4"`
	NoteText         string       `json:"note_text"`
	NoteTextRedacted string       `json:"note_text_redacted"`
	SentimentScore   float64      `json:"sentiment_score"`
	BurnoutFlag      int          `json:"burnout_flag"`
}

// QScores returns the four Likert responses in order.
func (c *Checkin) QScores() []int { return []int{c.Q1, c.Q2, c.Q3, c.Q4} }

// CheckinStore abstracts the append-only persistence required by the
// submission and dashboard workflows.
type CheckinStore interface {
	Append(c *Checkin) error
	LoadAll() ([]*Checkin, error)
}

type ErrorCode string

const (
	ErrorInvalid     ErrorCode = "invalid"
	ErrorNotFound    ErrorCode = "not_found"
	ErrorUnavailable ErrorCode = "unavailable"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewUnavailableError(msg string) error {
	return &ServiceError{Code: ErrorUnavailable, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
