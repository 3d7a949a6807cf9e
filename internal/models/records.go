// Package models defines the CMS record schemas served by hirelens.
package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Record is implemented by every collection schema.
type Record interface {
	RecordID() string
	// SearchFields returns the text fields free-text search runs against.
	SearchFields() []string
	// FacetValue returns the raw value of a categorical field, "" if unset.
	FacetValue(field string) string
	// Normalize trims free-text fields in place and clears optional
	// fields that hold unusable values.
	Normalize()
	Validate() error
}

// Base carries the identity and timestamps every CMS record has.
type Base struct {
	ID          string     `json:"_id" yaml:"_id"`
	CreatedDate *time.Time `json:"_createdDate,omitempty" yaml:"_createdDate,omitempty"`
	UpdatedDate *time.Time `json:"_updatedDate,omitempty" yaml:"_updatedDate,omitempty"`
}

// RecordID returns the CMS identifier.
func (b *Base) RecordID() string { return b.ID }

func (b *Base) normalizeID() { b.ID = strings.TrimSpace(b.ID) }

// Mentor is an item of the "mentors" collection.
type Mentor struct {
	Base
	MentorName      string   `json:"mentorName,omitempty"`
	Expertise       string   `json:"expertise,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	ProfilePicture  string   `json:"profilePicture,omitempty"`
	HasTrialSession *bool    `json:"hasTrialSession,omitempty"`
	HourlyRate      *float64 `json:"hourlyRate,omitempty"`
	BookingLink     string   `json:"bookingLink,omitempty"`
}

func (m *Mentor) SearchFields() []string {
	return []string{m.MentorName, m.Expertise, m.Bio}
}

func (m *Mentor) FacetValue(field string) string {
	if field == "expertise" {
		return m.Expertise
	}
	return ""
}

func (m *Mentor) Normalize() {
	m.normalizeID()
	trimAll(&m.MentorName, &m.Expertise, &m.Bio, &m.ProfilePicture, &m.BookingLink)
	clearInvalidURL(&m.BookingLink)
	if m.HourlyRate != nil && *m.HourlyRate < 0 {
		m.HourlyRate = nil
	}
}

func (m *Mentor) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.ID, validation.Required),
	)
}

// Accreditation is an item of the "accreditations" collection.
type Accreditation struct {
	Base
	Name              string `json:"name,omitempty"`
	BadgeImage        string `json:"badgeImage,omitempty"`
	EarningCriteria   string `json:"earningCriteria,omitempty"`
	AccreditationType string `json:"accreditationType,omitempty"`
	Description       string `json:"description,omitempty"`
}

func (a *Accreditation) SearchFields() []string {
	return []string{a.Name, a.Description, a.AccreditationType}
}

func (a *Accreditation) FacetValue(field string) string {
	if field == "accreditationType" {
		return a.AccreditationType
	}
	return ""
}

func (a *Accreditation) Normalize() {
	a.normalizeID()
	trimAll(&a.Name, &a.BadgeImage, &a.EarningCriteria, &a.AccreditationType, &a.Description)
}

func (a *Accreditation) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.ID, validation.Required),
	)
}

// CareerPath is an item of the "careerpaths" collection.
type CareerPath struct {
	Base
	DomainName    string `json:"domainName,omitempty"`
	Flowchart     string `json:"flowchart,omitempty"`
	Methodologies string `json:"methodologies,omitempty"`
	Workflows     string `json:"workflows,omitempty"`
	Timelines     string `json:"timelines,omitempty"`
	CareerScope   string `json:"careerScope,omitempty"`
}

func (c *CareerPath) SearchFields() []string { return []string{c.DomainName} }

func (c *CareerPath) FacetValue(string) string { return "" }

func (c *CareerPath) Normalize() {
	c.normalizeID()
	trimAll(&c.DomainName, &c.Flowchart, &c.Methodologies, &c.Workflows, &c.Timelines, &c.CareerScope)
}

func (c *CareerPath) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required),
	)
}

// LearningResource is an item of the "learningresources" collection.
type LearningResource struct {
	Base
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	ResourceLink    string `json:"resourceLink,omitempty"`
	SkillCovered    string `json:"skillCovered,omitempty"`
	ResourceType    string `json:"resourceType,omitempty"`
	DifficultyLevel string `json:"difficultyLevel,omitempty"`
}

func (l *LearningResource) SearchFields() []string {
	return []string{l.Title, l.Description, l.SkillCovered}
}

func (l *LearningResource) FacetValue(field string) string {
	switch field {
	case "resourceType":
		return l.ResourceType
	case "difficultyLevel":
		return l.DifficultyLevel
	}
	return ""
}

func (l *LearningResource) Normalize() {
	l.normalizeID()
	trimAll(&l.Title, &l.Description, &l.ResourceLink, &l.SkillCovered, &l.ResourceType, &l.DifficultyLevel)
	clearInvalidURL(&l.ResourceLink)
}

func (l *LearningResource) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.ID, validation.Required),
	)
}

// SkillShare is a peer-taught session offered on the employee hub.
type SkillShare struct {
	ID            string  `json:"id"`
	Skill         string  `json:"skill"`
	Description   string  `json:"description"`
	Teacher       string  `json:"teacher"`
	Rating        float64 `json:"rating"`
	Points        int     `json:"points"`
	Duration      string  `json:"duration"`
	Level         string  `json:"level"`
	EnrolledCount int     `json:"enrolledCount"`
}

func (s *SkillShare) RecordID() string { return s.ID }

func (s *SkillShare) SearchFields() []string {
	return []string{s.Skill, s.Description, s.Teacher}
}

func (s *SkillShare) FacetValue(field string) string {
	if field == "level" {
		return s.Level
	}
	return ""
}

func (s *SkillShare) Normalize() {}

func (s *SkillShare) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Level, validation.In("Beginner", "Intermediate", "Advanced")),
	)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// clearInvalidURL blanks a link the pages could not follow. Links are
// optional, so the record itself stays.
func clearInvalidURL(f *string) {
	if *f != "" && is.URL.Validate(*f) != nil {
		*f = ""
	}
}
