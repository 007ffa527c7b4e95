package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Severity is one of exactly three canonical complaint levels. All upstream
// spelling variants ("HIGH", "Yüksek", "low", ...) collapse into these.
type Severity string

const (
	SeverityLow    Severity = "Düşük"
	SeverityMedium Severity = "Orta"
	SeverityHigh   Severity = "Yüksek"
)

// Rank orders severities for comparison: Low < Medium < High.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityHigh:
		return 2
	default:
		return 1
	}
}

// FlexString accepts a JSON string or number and holds it as a string.
// Upstream IDs come back as either depending on the backend version.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexCount accepts a JSON number, a numeric string, or null. OK reports
// whether a usable value was present; the zero FlexCount is "absent".
type FlexCount struct {
	Value int
	OK    bool
}

func (f *FlexCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Non-numeric input counts as absent, not as a decode failure.
		return nil
	}
	f.Value = int(n)
	f.OK = true
	return nil
}

// CategoryRef tolerates the two category encodings the backend has shipped:
// a bare name string or an object carrying a name field. Absence resolves to
// the empty string; display defaulting is the normalizer's job.
type CategoryRef struct {
	ID   FlexString
	Name string
}

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &c.Name)
	}
	var obj struct {
		ID   FlexString `json:"id"`
		Name string     `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shape behaves like absence.
		return nil
	}
	c.ID = obj.ID
	c.Name = obj.Name
	return nil
}

// Complaint is the upstream record shape. Field aliases (body/detail/
// description, views/viewCount, comments/commentCount) reflect what different
// backend revisions actually return.
type Complaint struct {
	ID FlexString `json:"id"`

	Title       string `json:"title"`
	Body        string `json:"body"`
	Detail      string `json:"detail"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`

	BrandName          string   `json:"brandName"`
	MentionedCompanies []string `json:"mentionedCompanies"`
	HasCompanyMention  bool     `json:"hasCompanyMention"`

	Category   CategoryRef `json:"category"`
	CategoryID FlexString  `json:"categoryId"`

	CreatedAt string `json:"createdAt"`
	Severity  string `json:"severity"`

	Views        FlexCount `json:"views"`
	ViewCount    FlexCount `json:"viewCount"`
	Comments     FlexCount `json:"comments"`
	CommentCount FlexCount `json:"commentCount"`
}

// BodyText returns the first present body alias.
func (c Complaint) BodyText() string {
	if c.Body != "" {
		return c.Body
	}
	if c.Detail != "" {
		return c.Detail
	}
	return c.Description
}

// ViewTotal resolves the views alias chain, defaulting to 0.
func (c Complaint) ViewTotal() int {
	if c.Views.OK {
		return c.Views.Value
	}
	if c.ViewCount.OK {
		return c.ViewCount.Value
	}
	return 0
}

// CommentTotal resolves the comments alias chain, defaulting to 0.
func (c Complaint) CommentTotal() int {
	if c.Comments.OK {
		return c.Comments.Value
	}
	if c.CommentCount.OK {
		return c.CommentCount.Value
	}
	return 0
}

// ComplaintView is the display-ready projection of a Complaint: brand names
// masked, severity and category resolved, relative time computed. Views are
// built fresh per request and never mutated afterwards.
type ComplaintView struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Body            string   `json:"body,omitempty"`
	TimeAgo         string   `json:"timeAgo"`
	Views           int      `json:"views"`
	Comments        int      `json:"comments"`
	Severity        Severity `json:"severity"`
	HasBrandMention bool     `json:"hasBrandMention"`

	// CreatedAt backs recency sorting; clients render TimeAgo instead.
	CreatedAt time.Time `json:"-"`
}

// Category is a filter option as served to the client.
type Category struct {
	ID       FlexString `json:"id"`
	Name     string     `json:"name"`
	IsActive *bool      `json:"isActive,omitempty"`
}

// Active reports whether the option should be offered. A missing flag means
// active, matching the admin backend's default.
func (c Category) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

// Submission is the body for creating a complaint.
type Submission struct {
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Detail      string `json:"detail"`
	Anonymous   bool   `json:"anonymous"`
	BrandName   string `json:"brandName,omitempty"`
	AcceptRules bool   `json:"acceptRules"`
}

// Credentials is the login/register request body, forwarded verbatim.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthSession is the upstream's credential-exchange response.
type AuthSession struct {
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user,omitempty"`
}
