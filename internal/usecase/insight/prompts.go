package insight

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const summarySystemPrompt = `You are an assistant for a financial advisory firm. You write concise, professional summaries of client meetings for the advisor's records. Capture the financial facts discussed, the client's goals and concerns, and any agreed next steps. Write in plain prose, no markdown headings.`

const emailSystemPrompt = `You are an assistant for a financial advisory firm. You draft warm, professional follow-up emails from an advisor to a client after a meeting. Reference what was discussed, confirm any agreed actions, and close with an invitation to get in touch. Output only the email body, ready to send.`

// buildSummaryPrompt assembles the user message for meeting summary
// generation. Long transcripts are truncated to keep the request inside
// the model's context window.
func buildSummaryPrompt(meetingTitle, transcript string, limit int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize the following client meeting.\n\n")
	if meetingTitle != "" {
		fmt.Fprintf(&b, "Meeting: %s\n\n", meetingTitle)
	}
	fmt.Fprintf(&b, "Transcript:\n%s\n", truncate(transcript, limit))

	return b.String()
}

// EmailParams carries the context the follow-up email is drafted from.
type EmailParams struct {
	Transcript    string
	HardFacts     []string
	SoftFacts     []string
	MeetingTitle  string
	MeetingDate   time.Time
	ClientName    string
	ClientCompany string
	UserName      string
	UserCompany   string
}

func buildEmailPrompt(p EmailParams, limit int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Draft a follow-up email for this client meeting.\n\n")
	if p.MeetingTitle != "" {
		fmt.Fprintf(&b, "Meeting: %s\n", p.MeetingTitle)
	}
	if !p.MeetingDate.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", p.MeetingDate.Format("2 January 2006"))
	}
	if p.ClientName != "" {
		fmt.Fprintf(&b, "Client: %s", p.ClientName)
		if p.ClientCompany != "" && p.ClientCompany != p.ClientName {
			fmt.Fprintf(&b, " (%s)", p.ClientCompany)
		}
		b.WriteString("\n")
	}
	if p.UserName != "" {
		fmt.Fprintf(&b, "From: %s, %s\n", p.UserName, p.UserCompany)
	}

	if len(p.HardFacts) > 0 {
		b.WriteString("\nKey facts discussed:\n")
		for _, f := range p.HardFacts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	if len(p.SoftFacts) > 0 {
		b.WriteString("\nClient sentiment and goals:\n")
		for _, f := range p.SoftFacts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	fmt.Fprintf(&b, "\nTranscript:\n%s\n", truncate(p.Transcript, limit))

	return b.String()
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
