package convert

import "strings"

// Envelope tags. The prompt instructs the model to use exactly these and
// ParseReply looks for exactly these, so they change together.
const (
	CodeOpenTag     = "<TypeScriptCode>"
	CodeCloseTag    = "</TypeScriptCode>"
	SummaryOpenTag  = "<Summary>"
	SummaryCloseTag = "</Summary>"
)

const promptHeader = `
Convert the following JavaScript code to TypeScript.

Provide the TypeScript code first, then a concise summary explaining the changes and types used, tailored for a JavaScript developer learning TypeScript.

**Please format your summary using Markdown, with clear paragraphs and bullet points where appropriate.**

Please format your response exactly as follows, and do not include any additional text or explanations outside of these tags:

` + CodeOpenTag + `
[TypeScript code here]
` + CodeCloseTag + `

` + SummaryOpenTag + `
[Summary here]
` + SummaryCloseTag + `

JavaScript Code:
`

// BuildPrompt returns the single user message sent to the provider. The
// source is interpolated verbatim.
func BuildPrompt(source string) string {
	var b strings.Builder
	b.Grow(len(promptHeader) + len(source) + 1)
	b.WriteString(promptHeader)
	b.WriteString(source)
	b.WriteString("\n")
	return b.String()
}
