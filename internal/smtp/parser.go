package smtp

import (
	"io"
	"net/mail"
	"regexp"
	"strings"

	"github.com/jhillyerd/enmime"
)

var (
	scriptStyleRe  = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRepl = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// ParsedEmail is the part of an inbound message that becomes an Email
type ParsedEmail struct {
	SenderEmail string
	SenderName  string
	Subject     string
	// Body is the text part, or the HTML part with markup stripped when there is no text part
	Body string
}

// ParseEmail parses an RFC 5322 message
func ParseEmail(r io.Reader) (*ParsedEmail, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedEmail{
		Subject: strings.TrimSpace(env.GetHeader("Subject")),
		Body:    plainBody(env.Text, env.HTML),
	}
	parsed.SenderName, parsed.SenderEmail = parseFromHeader(env.GetHeader("From"))

	return parsed, nil
}

// parseFromHeader extracts name and email from a From header
func parseFromHeader(from string) (name, email string) {
	from = strings.TrimSpace(from)
	if from == "" {
		return "", ""
	}

	addr, err := mail.ParseAddress(from)
	if err != nil {
		return "", from
	}
	return addr.Name, addr.Address
}

// plainBody prefers the text part and falls back to stripped HTML
func plainBody(text, html string) string {
	if strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}
	if html == "" {
		return ""
	}
	return strings.Join(strings.Fields(stripHTMLTags(html)), " ")
}

// stripHTMLTags removes markup, script and style content, and decodes common entities
func stripHTMLTags(html string) string {
	html = scriptStyleRe.ReplaceAllString(html, "")
	html = htmlTagRe.ReplaceAllString(html, " ")
	return htmlEntityRepl.Replace(html)
}
