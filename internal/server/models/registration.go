// Package models holds the backend's persistent records.
package models

import "time"

// Registration is one event sign-up. ResumeKey is the object key of the
// uploaded résumé in the bucket; it is empty when HasResume is false.
type Registration struct {
	UserID              string
	Name                string
	Major               string
	Graduation          string
	University          string
	DietaryRestrictions string
	HasResume           bool
	ResumeKey           string
	UpdatedAt           time.Time
}

// RegistrationFilter narrows a registration listing. Empty strings and a
// nil HasResume match everything.
type RegistrationFilter struct {
	HasResume  *bool
	Major      string
	Graduation string
	University string
}

// ResumeObject locates one stored résumé.
type ResumeObject struct {
	UserID string
	Name   string
	Key    string
}
