package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelatedTables(t *testing.T) {
	tests := []struct {
		name    string
		content string
		own     string
		want    []string
	}{
		{
			name:    "join target",
			content: "SELECT * FROM users JOIN orders ON users.id = orders.user_id",
			own:     "users",
			want:    []string{"orders"},
		},
		{
			name:    "from target",
			content: "select count(*) from payments where status = 'ok'",
			own:     "orders",
			want:    []string{"payments"},
		},
		{
			name:    "dotted pair",
			content: "Compare against invoices.total for reconciliation.",
			own:     "payments",
			want:    []string{"invoices"},
		},
		{
			name:    "prose references",
			content: "This references customers and links to table: addresses",
			own:     "orders",
			want:    []string{"addresses", "customers"},
		},
		{
			name:    "own table excluded",
			content: "JOIN users ON true",
			own:     "users",
			want:    nil,
		},
		{
			name:    "deduplicated and sorted",
			content: "FROM orders JOIN orders JOIN accounts",
			own:     "users",
			want:    []string{"accounts", "orders"},
		},
		{
			name:    "no references",
			content: "Plain prose without any schema mentions.",
			own:     "users",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relatedTables(tt.content, tt.own))
		})
	}
}

func TestExtractKeywords_HeaderWords(t *testing.T) {
	got := extractKeywords("Business Context and Use", "nothing here")
	// Words of 3 chars or fewer ("and", "use") are skipped.
	assert.Equal(t, []string{"business", "context"}, got)
}

func TestExtractKeywords_BoldTerms(t *testing.T) {
	got := extractKeywords("", "The **primary key** is immutable, unlike **email**.")
	assert.Equal(t, []string{"primary key", "email"}, got)
}

func TestExtractKeywords_SQLReservedWords(t *testing.T) {
	got := extractKeywords("", "SELECT name FROM users ORDER BY name")
	assert.Contains(t, got, "select")
	assert.Contains(t, got, "from")
	assert.Contains(t, got, "order")
	// "where" never appears in the body.
	assert.NotContains(t, got, "where")
}

func TestExtractKeywords_NoPartialSQLWordMatch(t *testing.T) {
	// "summary" contains "sum" but is not the reserved word.
	got := extractKeywords("", "A summary of the account data.")
	assert.NotContains(t, got, "sum")
}

func TestExtractKeywords_CapAndDedupe(t *testing.T) {
	header := "alpha beta gamma delta epsilon zeta theta iota kappa lambda omega"
	got := extractKeywords(header, "select from where join order group count sum avg")
	assert.Len(t, got, MaxKeywords)

	// Duplicates across sources appear once.
	got = extractKeywords("email", "**email** and more about select")
	assert.Equal(t, []string{"email", "select"}, got)
}
