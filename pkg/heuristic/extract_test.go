package heuristic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "canonical with spaces", input: "Chicken Biryani ", want: "chicken_biryani"},
		{name: "synonym", input: "cola", want: "pepsi"},
		{name: "synonym with capitals", input: "Coke", want: "pepsi"},
		{name: "trailing and", input: "biryani and", want: "biryani"},
		{name: "short synonym", input: "zinger", want: "zinger_burger"},
		{name: "plural contains key", input: "garlic naans", want: "garlic_naan"},
		{name: "punctuation", input: "kheer?", want: "kheer"},
		{name: "unknown passes through", input: "Pizza", want: "pizza"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeItemName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeItemName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeItemName(got); again != got {
				t.Errorf("NormalizeItemName not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestExtractOrderLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []OrderLine
	}{
		{
			name: "two items",
			text: "2 chicken biryani and 1 pepsi",
			want: []OrderLine{{Item: "chicken_biryani", Quantity: 2}, {Item: "pepsi", Quantity: 1}},
		},
		{
			name: "duplicates merged",
			text: "1 naan and 2 naan",
			want: []OrderLine{{Item: "naan", Quantity: 3}},
		},
		{
			name: "ordering sentence",
			text: "I want to order 2 biryani",
			want: []OrderLine{{Item: "biryani", Quantity: 2}},
		},
		{
			name: "first seen order kept",
			text: "1 kheer, 2 samosa and 1 kheer",
			want: []OrderLine{{Item: "kheer", Quantity: 2}, {Item: "samosa", Quantity: 2}},
		},
		{
			name: "zero quantity ignored",
			text: "0 pepsi",
			want: []OrderLine{},
		},
		{
			name: "no quantities",
			text: "some biryani please",
			want: []OrderLine{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractOrderLines(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractOrderLines(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestExtractOrderID(t *testing.T) {
	assert.Equal(t, "1019", ExtractOrderID("status of order #1019"))
	assert.Equal(t, "1042", ExtractOrderID("Where is my order 1042?"))
	assert.Equal(t, "2001", ExtractOrderID("2001"))
	assert.Equal(t, "", ExtractOrderID("no numbers here"))
	assert.Equal(t, "", ExtractOrderID("order 12"))
}

func TestExtractDishReference(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "What is the price of chicken biryani?", want: "chicken_biryani"},
		{text: "how much is the zinger burger", want: "zinger_burger"},
		{text: "is pepsi available", want: "pepsi"},
		{text: "tell me about the nihari", want: "nihari"},
		{text: "hello", want: ""},
		{text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDishReference(tt.text))
		})
	}
}

func TestExtractSupportCategory(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "there is an error on checkout", want: "technical"},
		{text: "I can't login to my account", want: "account"},
		{text: "the app keeps crashing", want: "device"},
		{text: "my card payment failed", want: "payment"},
		{text: "random words", want: DefaultSupportCategory},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSupportCategory(tt.text))
		})
	}
	assert.Equal(t, []string{"technical", "account", "device", "website", "payment", "general"}, SupportCategories())
}

func TestExtractGuestCount(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{text: "4 guests", want: 4, wantOK: true},
		{text: "we are 3 people", want: 3, wantOK: true},
		{text: "table for 2", want: 2, wantOK: true},
		{text: "6", want: 6, wantOK: true},
		{text: "21 people", want: 21, wantOK: true},
		{text: "a big party", want: 0, wantOK: false},
		{text: "book for 15 march 7pm", want: 0, wantOK: false},
		{text: "for 3rd june", want: 0, wantOK: false},
		{text: "for 7 pm", want: 0, wantOK: false},
		{text: "book for 4 on 15 march", want: 4, wantOK: true},
		{text: "for 15 march, party of 5", want: 5, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractGuestCount(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatOrderItems(t *testing.T) {
	tests := []struct {
		name  string
		lines []OrderLine
		want  string
	}{
		{name: "empty", lines: nil, want: ""},
		{name: "single unit word in name", lines: []OrderLine{{Item: "garlic_naan", Quantity: 3}}, want: "3 garlic naans"},
		{name: "single burger", lines: []OrderLine{{Item: "zinger_burger", Quantity: 1}}, want: "1 zinger burger"},
		{
			name:  "two lines",
			lines: []OrderLine{{Item: "chicken_biryani", Quantity: 2}, {Item: "pepsi", Quantity: 1}},
			want:  "2 plates of chicken biryani and 1 bottle of pepsi",
		},
		{
			name:  "three lines",
			lines: []OrderLine{{Item: "kheer", Quantity: 1}, {Item: "samosa", Quantity: 4}, {Item: "lassi", Quantity: 2}},
			want:  "1 bowl of kheer, 4 pieces of samosa and 2 glasses of lassi",
		},
		{name: "unknown item", lines: []OrderLine{{Item: "pizza", Quantity: 2}}, want: "2 pizzas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOrderItems(tt.lines))
		})
	}
}
