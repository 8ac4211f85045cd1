package session

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// ReferenceField is the query field carrying the source text of a shared
// location.
const ReferenceField = "name"

const shareTitle = "Name to Location"

// ShareLink is a manually constructed link into a messaging service.
type ShareLink struct {
	Service string
	URL     string
}

// ShareResult describes how the active record was shared.
type ShareResult struct {
	// Reference reproduces the active record when loaded.
	Reference string
	// Native is true when the native share target accepted the request.
	Native bool
	// Links are set when no native share target could be used.
	Links []ShareLink
}

// BuildReference returns base with its query replaced by the single
// ReferenceField carrying text, percent-encoded.
func BuildReference(base, text string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("build reference: parse base %q: %w", base, err)
	}

	u.RawQuery = ReferenceField + "=" + encodeComponent(text)
	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}

// ParseReference extracts the source text from a shareable reference.
// ok is false when the reference carries no ReferenceField.
func ParseReference(ref string) (text string, ok bool, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false, fmt.Errorf("parse reference: %w", err)
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", false, fmt.Errorf("parse reference: query: %w", err)
	}

	v, ok := values[ReferenceField]
	if !ok || len(v) == 0 {
		return "", false, nil
	}
	return v[0], true, nil
}

// ShareActive builds a shareable reference for the active record and hands
// it to the native share target. When the target is missing or fails,
// the result carries fallback links instead. Session state is not modified.
func (s *Session) ShareActive(base string) (ShareResult, error) {
	active, ok := s.Active()
	if !ok {
		return ShareResult{}, ErrNoActiveRecord
	}

	ref, err := BuildReference(base, active.SourceText)
	if err != nil {
		return ShareResult{}, fmt.Errorf("share active: %w", err)
	}

	text := shareText(active.Latitude, active.Longitude)
	res := ShareResult{Reference: ref}

	if s.share != nil && s.share.Share(shareTitle, text, ref) == nil {
		res.Native = true
		return res, nil
	}

	res.Links = FallbackLinks(text, ref)
	return res, nil
}

// FallbackLinks returns deep links into common messaging services.
func FallbackLinks(text, ref string) []ShareLink {
	t := encodeComponent(text)
	r := encodeComponent(ref)
	both := encodeComponent(text + " " + ref)

	return []ShareLink{
		{Service: "whatsapp", URL: "https://wa.me/?text=" + both},
		{Service: "telegram", URL: "https://t.me/share/url?url=" + r + "&text=" + t},
		{Service: "x", URL: "https://twitter.com/intent/tweet?text=" + t + "&url=" + r},
		{Service: "email", URL: "mailto:?subject=" + encodeComponent(shareTitle) + "&body=" + both},
	}
}

// FrameFilename names an exported frame after the source text.
func FrameFilename(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "name"
	}
	return slug + "-location.png"
}

func shareText(lat, lon float64) string {
	return fmt.Sprintf("My name lands at %.4f°, %.4f° on the globe.", lat, lon)
}

// encodeComponent percent-encodes s for use inside a query value,
// spaces included.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
