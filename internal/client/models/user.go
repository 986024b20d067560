package models

import "encoding/json"

// Session is what a successful login yields: the bearer token plus optional
// expiry metadata when token expiration is enabled server-side.
type Session struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"token_expires_in"`
	ExpiresAt string `json:"token_expires_at"`
}

// User is the profile returned by the current-user endpoint.
type User struct {
	ID         string
	Email      string
	Username   string
	FirstName  string
	LastName   string
	ProfilePic string
}

func (u *User) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         flexString `json:"id"`
		Email      string     `json:"email"`
		Username   string     `json:"username"`
		FirstName  string     `json:"first_name"`
		LastName   string     `json:"last_name"`
		ProfilePic string     `json:"profile_pic"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = User{
		ID:         string(raw.ID),
		Email:      raw.Email,
		Username:   raw.Username,
		FirstName:  raw.FirstName,
		LastName:   raw.LastName,
		ProfilePic: raw.ProfilePic,
	}
	return nil
}

// DisplayName returns the best human-readable name for the user.
func (u *User) DisplayName() string {
	if u.FirstName != "" || u.LastName != "" {
		name := u.FirstName
		if u.LastName != "" {
			if name != "" {
				name += " "
			}
			name += u.LastName
		}
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// ResourceFileRef links an uploaded file into a resource draft. Either
// FileID or FileURL must be present.
type ResourceFileRef struct {
	FileID   string `json:"fileId,omitempty" validate:"required_without=FileURL"`
	FileURL  string `json:"fileUrl,omitempty"`
	Name     string `json:"name,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// ResourceDraft is the payload for creating a resource out of previously
// uploaded files. Validated client-side before any network call.
type ResourceDraft struct {
	Title       string            `json:"title" validate:"required,min=3"`
	Description string            `json:"description,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	Semester    string            `json:"semester,omitempty"`
	CourseCode  string            `json:"courseCode,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Files       []ResourceFileRef `json:"files" validate:"min=1,dive"`
}

// Resource is the descriptor returned after creating a resource.
type Resource struct {
	ID       string
	Title    string
	Subject  string
	Semester string
}

func (r *Resource) UnmarshalJSON(b []byte) error {
	type bare struct {
		ID       flexString `json:"id"`
		Title    string     `json:"title"`
		Subject  string     `json:"subject"`
		Semester string     `json:"semester"`
	}
	var envelope struct {
		Resource *bare `json:"resource"`
	}
	// Envelope form {success, resource: {...}} takes precedence; fall back
	// to a bare resource object.
	if err := json.Unmarshal(b, &envelope); err == nil && envelope.Resource != nil {
		*r = Resource{
			ID:       string(envelope.Resource.ID),
			Title:    envelope.Resource.Title,
			Subject:  envelope.Resource.Subject,
			Semester: envelope.Resource.Semester,
		}
		return nil
	}
	var flat bare
	if err := json.Unmarshal(b, &flat); err != nil {
		return err
	}
	*r = Resource{
		ID:       string(flat.ID),
		Title:    flat.Title,
		Subject:  flat.Subject,
		Semester: flat.Semester,
	}
	return nil
}
