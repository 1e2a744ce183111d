package assistant

import (
	"strings"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// buildPrompt frames the user's question with instructions and, when
// available, the detected recurring charges, formatted for the model.
func buildPrompt(question string, series []domain.RecurringSeries) string {
	var b strings.Builder

	b.WriteString("You are a personal-finance assistant inside a budgeting dashboard.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Answer in plain text, no Markdown fences.\n")
	b.WriteString("- Be concise and practical; reference the user's charges by merchant name.\n")
	b.WriteString("- Never invent charges that are not listed below.\n")
	b.WriteString("- If the question is not about personal finance, politely decline.\n\n")

	if len(series) > 0 {
		b.WriteString("The user's detected recurring charges:\n")
		for _, s := range series {
			b.WriteString("- " + s.Merchant)
			b.WriteString(": " + s.AverageAmount.StringFixed(2))
			b.WriteString(" " + string(s.Cadence))
			b.WriteString(", next due " + s.NextDueEstimate.String())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Question:\n")
	b.WriteString(question)
	return b.String()
}
