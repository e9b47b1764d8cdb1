// Package hr contains the HR agent skills: resume summarization and
// onboarding plan generation. The skills share the session key UserDataKey,
// written by the resume summarizer and read by the onboarding planner.
package hr

import "strings"

// UserDataKey is the session state key holding the summarized profile
const UserDataKey = "user_data"

// UserData is the summarized profile of a new hire
type UserData struct {
	Name            string   `json:"name" jsonschema:"description=Full name of the candidate"`
	Email           string   `json:"email,omitempty" jsonschema:"description=Contact email address"`
	CurrentRole     string   `json:"current_role,omitempty" jsonschema:"description=Most recent job title"`
	TargetRole      string   `json:"target_role,omitempty" jsonschema:"description=Role the candidate is being hired for when stated"`
	Skills          []string `json:"skills,omitempty" jsonschema:"description=Key technical and professional skills"`
	YearsExperience int      `json:"years_experience,omitempty" jsonschema:"description=Total years of professional experience"`
	Summary         string   `json:"summary,omitempty" jsonschema:"description=Two or three sentence professional summary"`
}

// Role returns the role the onboarding plan should target, falling back to
// fallback when the profile names none
func (u UserData) Role(fallback string) string {
	if role := strings.TrimSpace(u.TargetRole); role != "" {
		return role
	}
	if role := strings.TrimSpace(u.CurrentRole); role != "" {
		return role
	}
	return fallback
}
