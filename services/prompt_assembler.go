package services

import (
	"strconv"
	"strings"

	"github.com/akjilan/digital-ecommerce/models"
)

const (
	descriptionPreviewRunes = 120
	emptyCatalogLine        = "No products currently in the catalog."
)

const instructionsHeader = `You are a friendly, knowledgeable ecommerce AI assistant for our online store.

PRODUCT CATALOG (complete list of all active products):
`

const instructionsFooter = `

INSTRUCTIONS:
- ALWAYS check the product catalog above before saying we don't carry something.
- Use semantic reasoning: "smart watch" matches "Fitness Tracker", "running shoes" matches "Athletic Sneakers".
- When a product exists, mention its EXACT name and price from the catalog.
- If multiple products are relevant, list them briefly.
- If something truly is not in the catalog, say so and suggest the closest match from the catalog.
- Keep responses concise (2-4 sentences max) and helpful.
- NEVER invent products or prices not in the catalog above.
- For non-product questions (shipping, returns, etc.) give a short, helpful answer.
- If you cannot confidently match a product, prefer listing the top 2 closest products from the catalog rather than saying we don't carry it.`

// AssemblePrompt renders the gateway input for one reply. It is a pure
// function of its argument.
func AssemblePrompt(actx models.AssistantContext) models.Prompt {
	var b strings.Builder
	b.WriteString(instructionsHeader)
	b.WriteString(CatalogBlock(actx.CandidateProducts))
	b.WriteString(instructionsFooter)

	turns := make([]models.PromptMessage, 0, len(actx.RecentTurns)+1)
	for _, t := range actx.RecentTurns {
		turns = append(turns, models.PromptMessage{Role: t.Role, Content: t.Content})
	}
	turns = append(turns, models.PromptMessage{Role: models.ChatRoleUser, Content: actx.UserMessage})

	return models.Prompt{Instructions: b.String(), Turns: turns}
}

// CatalogBlock renders the candidate products, one entry per product separated
// by a blank line.
func CatalogBlock(products []models.ProductSummary) string {
	if len(products) == 0 {
		return emptyCatalogLine
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, formatProduct(p))
	}
	return strings.Join(lines, "\n\n")
}

func formatProduct(p models.ProductSummary) string {
	currency := p.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	stock := "Out of stock"
	if p.Stock > 0 {
		stock = "In stock (" + strconv.Itoa(p.Stock) + ")"
	}

	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(p.Title)
	b.WriteString(" — ")
	b.WriteString(currency)
	b.WriteString(" ")
	b.WriteString(strconv.FormatFloat(p.Price, 'f', 2, 64))
	b.WriteString(" | ")
	b.WriteString(stock)
	if p.Type != "" {
		b.WriteString(" | Type: ")
		b.WriteString(p.Type)
	}
	if len(p.Sizes) > 0 {
		b.WriteString(" | Sizes: ")
		b.WriteString(strings.Join(p.Sizes, ", "))
	}
	if len(p.Colors) > 0 {
		b.WriteString(" | Colors: ")
		b.WriteString(strings.Join(p.Colors, ", "))
	}
	b.WriteString("\n  ")
	b.WriteString(truncateRunes(p.Description, descriptionPreviewRunes))
	return b.String()
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
