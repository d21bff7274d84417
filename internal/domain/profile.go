package domain

import "context"

// Availability is a candidate's declared capacity for mentoring.
type Availability string

const (
	AvailabilityAvailable    Availability = "Available"
	AvailabilityLimited      Availability = "Limited"
	AvailabilityNotAvailable Availability = "Not Available"
)

// Intent is one of the things a seeker declares to be looking for.
type Intent string

const (
	IntentMentorship     Intent = "Mentorship"
	IntentJobOpportunity Intent = "Job Opportunity"
	IntentGuidance       Intent = "Guidance"
	IntentNetwork        Intent = "Network"
	IntentJob            Intent = "Job"
)

// SeekerProfile is the profile requesting matches (a student).
type SeekerProfile struct {
	ID                string   `json:"id"`
	Name              string   `json:"name,omitempty"`
	University        string   `json:"university"`
	Degree            string   `json:"degree"`
	Company           string   `json:"company,omitempty"`
	Skills            []string `json:"skills"`
	Interests         []string `json:"interests"`
	PreferredIndustry string   `json:"preferred_industry,omitempty"`
	Location          string   `json:"location,omitempty"`
	LookingFor        []Intent `json:"looking_for"`
}

// CandidateProfile is a profile scored against a seeker (an alumnus).
type CandidateProfile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name,omitempty"`
	University     string       `json:"university"`
	Degree         string       `json:"degree"`
	Industry       string       `json:"industry"`
	Company        string       `json:"company"`
	Skills         []string     `json:"skills"`
	Interests      []string     `json:"interests"`
	MentoringAreas []string     `json:"mentoring_areas"`
	HiringStack    []string     `json:"hiring_stack,omitempty"`
	Availability   Availability `json:"availability"`
	CanHire        bool         `json:"can_hire"`
	Location       string       `json:"location,omitempty"`
}

// ProfileSource is the read-only view of the profile service.
type ProfileSource interface {
	// GetSeeker returns ErrNotFound when no seeker has the given id.
	GetSeeker(ctx context.Context, id string) (*SeekerProfile, error)
	// ListCandidates may return an empty slice.
	ListCandidates(ctx context.Context) ([]CandidateProfile, error)
	// GetCandidate returns ErrNotFound when no candidate has the given id.
	GetCandidate(ctx context.Context, id string) (*CandidateProfile, error)
	ListSeekerIDs(ctx context.Context) ([]string, error)
}
