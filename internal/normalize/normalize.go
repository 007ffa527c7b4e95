// Package normalize projects raw upstream complaint records into the
// display-ready view: brand names masked, severity and category resolved to
// canonical values, timestamps bucketed into relative labels. Every field has
// a deterministic fallback, so the projection never fails.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/sorplus/public-gateway/internal/masking"
	"github.com/sorplus/public-gateway/internal/models"
)

const (
	// DefaultCategory labels records whose category is absent or malformed.
	DefaultCategory = "Diğer"

	// ExcerptLength caps the listing excerpt before the ellipsis.
	ExcerptLength = 160

	// placeholder stands in for missing text and unparseable timestamps.
	placeholder = "—"
)

// Complaint builds the public view of a raw record. Mention detection runs
// against the unmasked text first; masking is applied afterwards. Changing
// that order would make the mention flag always false.
func Complaint(raw models.Complaint, now time.Time) models.ComplaintView {
	targets := masking.ResolveMaskTargets(raw.BrandName, raw.MentionedCompanies)

	title := raw.Title
	if strings.TrimSpace(title) == "" {
		title = placeholder
	}
	body := raw.BodyText()

	hasMention := raw.HasCompanyMention ||
		masking.HasMention(title, targets) ||
		masking.HasMention(body, targets)

	maskedTitle := masking.MaskText(title, targets)
	maskedBody := masking.MaskText(body, targets)

	excerpt := strings.TrimSpace(raw.Excerpt)
	if excerpt != "" {
		excerpt = Excerpt(masking.MaskText(excerpt, targets), ExcerptLength)
	} else {
		excerpt = Excerpt(maskedBody, ExcerptLength)
	}

	createdAt, hasCreatedAt := parseTimestamp(raw.CreatedAt)

	view := models.ComplaintView{
		ID:              raw.ID.String(),
		Category:        CategoryName(raw.Category),
		Title:           maskedTitle,
		Excerpt:         excerpt,
		Body:            maskedBody,
		TimeAgo:         placeholder,
		Views:           raw.ViewTotal(),
		Comments:        raw.CommentTotal(),
		Severity:        Severity(raw.Severity),
		HasBrandMention: hasMention,
	}
	if hasCreatedAt {
		view.CreatedAt = createdAt
		view.TimeAgo = TimeAgo(createdAt, now)
	}
	return view
}

// CategoryName resolves the flexible upstream category to a display name.
func CategoryName(ref models.CategoryRef) string {
	if name := strings.TrimSpace(ref.Name); name != "" {
		return name
	}
	return DefaultCategory
}

// Severity collapses upstream spelling variants into the three canonical
// levels. Total by construction: anything unrecognized is Medium.
func Severity(raw string) models.Severity {
	token := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(token, "high") || strings.Contains(token, "yüksek"):
		return models.SeverityHigh
	case strings.Contains(token, "low") || strings.Contains(token, "düşük"):
		return models.SeverityLow
	default:
		return models.SeverityMedium
	}
}

// TimeAgo renders a bucketed Turkish relative-time label for ts as seen from
// now, falling back to an absolute date past four weeks.
func TimeAgo(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = 0
	}

	minutes := int(diff.Minutes())
	hours := minutes / 60
	days := hours / 24

	switch {
	case minutes < 1:
		return "az önce"
	case minutes < 60:
		return fmt.Sprintf("%d dk önce", minutes)
	case hours < 24:
		return fmt.Sprintf("%d saat önce", hours)
	case days == 1:
		return "dün"
	case days < 7:
		return fmt.Sprintf("%d gün önce", days)
	case days/7 < 4:
		return fmt.Sprintf("%d hafta önce", days/7)
	default:
		return ts.Format("02.01.2006")
	}
}

// Excerpt collapses whitespace and truncates text to max runes with an
// ellipsis. Empty input renders as the em-dash placeholder.
func Excerpt(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return placeholder
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

// parseTimestamp accepts RFC 3339 with or without sub-second precision, plus
// the date-only form some admin exports use.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
