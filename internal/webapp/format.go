package webapp

import (
	"fmt"
	"strings"
)

// maxRenderedResults caps how many products/outlets one reply lists.
const maxRenderedResults = 3

// FormatChatReply renders the backend's structured chat response into
// the markdown text shown in the chat window: the summary first, then
// up to three product hits and three outlet rows.
func FormatChatReply(resp *ChatResponse) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(resp.Summary)

	if len(resp.RetrievedProducts) > 0 {
		b.WriteString("\n\n**Products Found:**\n")
		for i, product := range capProducts(resp.RetrievedProducts) {
			fmt.Fprintf(&b, "\n**%d. %s**\n", i+1, valueOrNA(product.Name))
			fmt.Fprintf(&b, "   - Category: %s\n", valueOrNA(product.Category))
			fmt.Fprintf(&b, "   - Price: %.2f\n", product.Price)
			fmt.Fprintf(&b, "   - Color: %s\n", valueOrNA(product.Color))
			fmt.Fprintf(&b, "   - Image: %s\n", valueOrNA(product.Image))
			fmt.Fprintf(&b, "   - Score: %.3f\n", product.Score)
			fmt.Fprintf(&b, "   - Description: %s\n", valueOrNA(product.Snippet))
		}
	}

	if len(resp.ExecutedSQLResult) > 0 {
		b.WriteString("\n\n**Outlets Found:**\n")
		for i, outlet := range capOutlets(resp.ExecutedSQLResult) {
			fmt.Fprintf(&b, "\n**%d. %s**\n", i+1, valueOrNA(outlet.Name))
			fmt.Fprintf(&b, "   - Address: %s\n", valueOrNA(outlet.Address))
			fmt.Fprintf(&b, "   - Phone: %s\n", valueOrNA(outlet.Phone()))
			fmt.Fprintf(&b, "   - Services: %s\n", valueOrNA(outlet.Services))
			fmt.Fprintf(&b, "   - Place Type: %s\n", valueOrNA(outlet.PlaceType))
			fmt.Fprintf(&b, "   - Opens At: %s\n", valueOrNA(outlet.OpensAt))
		}
	}

	return b.String()
}

func capProducts(products []RetrievedProduct) []RetrievedProduct {
	if len(products) > maxRenderedResults {
		return products[:maxRenderedResults]
	}
	return products
}

func capOutlets(outlets []OutletResult) []OutletResult {
	if len(outlets) > maxRenderedResults {
		return outlets[:maxRenderedResults]
	}
	return outlets
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
