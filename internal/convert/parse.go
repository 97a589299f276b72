package convert

import (
	"regexp"
	"strings"
)

// Result is a successful conversion.
type Result struct {
	TypedCode string
	Summary   string
}

var (
	codePattern    = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(CodeOpenTag) + `\s*(.*?)\s*` + regexp.QuoteMeta(CodeCloseTag))
	summaryPattern = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(SummaryOpenTag) + `\s*(.*?)\s*` + regexp.QuoteMeta(SummaryCloseTag))
)

// ParseReply extracts the code and summary sections from a provider reply.
// Text before the first code tag is discarded. Both sections are required;
// a section holding only whitespace extracts as the empty string.
func ParseReply(reply string) (*Result, error) {
	start := strings.Index(reply, CodeOpenTag)
	if start == -1 {
		return nil, ErrTagNotFound
	}
	reply = reply[start:]

	code := codePattern.FindStringSubmatch(reply)
	if code == nil {
		return nil, ErrCodeExtraction
	}
	summary := summaryPattern.FindStringSubmatch(reply)
	if summary == nil {
		return nil, ErrSummaryExtraction
	}

	return &Result{
		TypedCode: strings.TrimSpace(code[1]),
		Summary:   strings.TrimSpace(summary[1]),
	}, nil
}
