package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmails(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "no emails",
			text: "just some bio text with no contact info",
			want: []string{},
		},
		{
			name: "single email",
			text: "contact me at hello@example.com for business",
			want: []string{"hello@example.com"},
		},
		{
			name: "multiple emails sorted",
			text: "zeta@example.com or alpha@example.com",
			want: []string{"alpha@example.com", "zeta@example.com"},
		},
		{
			name: "case folded",
			text: "Contact: Hello@Example.COM",
			want: []string{"hello@example.com"},
		},
		{
			name: "duplicates collapse",
			text: "a@b.co a@b.co A@B.CO",
			want: []string{"a@b.co"},
		},
		{
			name: "plus and dots in local part",
			text: "reach me: first.last+tag@sub.example.org",
			want: []string{"first.last+tag@sub.example.org"},
		},
		{
			name: "single letter TLD rejected",
			text: "not-an-email@host.x",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emails(tt.text))
		})
	}
}

func TestEmailsPure(t *testing.T) {
	text := "a@b.co and c@d.org"
	first := Emails(text)
	second := Emails(text)
	assert.Equal(t, first, second)
}

func TestEmailsDedupIdempotent(t *testing.T) {
	text := "bio with contact@example.com inside"
	assert.Equal(t, Emails(text), Emails(text+text))
}

func TestMerge(t *testing.T) {
	t.Run("unions and sorts", func(t *testing.T) {
		got := Merge([]string{"b@x.co", "a@x.co"}, []string{"c@x.co", "b@x.co"})
		assert.Equal(t, []string{"a@x.co", "b@x.co", "c@x.co"}, got)
	})

	t.Run("lowercases", func(t *testing.T) {
		got := Merge([]string{"A@X.CO"}, []string{"a@x.co"})
		assert.Equal(t, []string{"a@x.co"}, got)
	})

	t.Run("drops empty strings", func(t *testing.T) {
		got := Merge([]string{""}, nil)
		assert.Equal(t, []string{}, got)
	})
}
