package webapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatChatReplySummaryOnly(t *testing.T) {
	reply := FormatChatReply(&ChatResponse{Summary: "We have 12 outlets in KL."})
	assert.Equal(t, "We have 12 outlets in KL.", reply)
}

func TestFormatChatReplyRendersProductsAndOutlets(t *testing.T) {
	resp := &ChatResponse{
		Summary: "Found these for you.",
		RetrievedProducts: []RetrievedProduct{
			{Name: "ZUS All Day Cup", Category: "Tumblers", Price: 79, Color: "Thunder Blue", Score: 0.91, Snippet: "500ml cup"},
		},
		ExecutedSQLResult: []OutletResult{
			{Name: "ZUS KLCC", Address: "Suria KLCC", Contact: "+60 12-345 6789", Services: "Dine-in", PlaceType: "Coffee shop", OpensAt: "Monday, 8am–10pm"},
		},
	}

	reply := FormatChatReply(resp)

	assert.Contains(t, reply, "Found these for you.")
	assert.Contains(t, reply, "**Products Found:**")
	assert.Contains(t, reply, "**1. ZUS All Day Cup**")
	assert.Contains(t, reply, "- Price: 79.00")
	assert.Contains(t, reply, "**Outlets Found:**")
	// Phone falls back to the legacy "contact" field.
	assert.Contains(t, reply, "- Phone: +60 12-345 6789")
	// Missing image degrades to the placeholder.
	assert.Contains(t, reply, "- Image: N/A")
}

func TestFormatChatReplyCapsResults(t *testing.T) {
	resp := &ChatResponse{Summary: "Many hits."}
	for i := 0; i < 5; i++ {
		resp.RetrievedProducts = append(resp.RetrievedProducts, RetrievedProduct{Name: "Cup"})
	}

	reply := FormatChatReply(resp)

	assert.Equal(t, 3, strings.Count(reply, "- Category:"))
	assert.NotContains(t, reply, "**4. ")
}
