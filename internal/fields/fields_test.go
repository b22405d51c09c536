package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"simple", "Email: jane.doe@example.com", "jane.doe@example.com", true},
		{"first wins", "a@x.io then b@y.io", "a@x.io", true},
		{"plus tag", "jane+jobs@mail.co.uk", "jane+jobs@mail.co.uk", true},
		{"missing", "no contact here", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Email(tt.input)
			assert.Equal(t, tt.ok, got.OK())
			assert.Equal(t, tt.want, got.Or(""))
		})
	}
}

func TestPhone(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"country code with plus", "+91 9876543210", "91 9876543210", true},
		{"bare ten digits", "9876543210", "9876543210", true},
		{"hyphen separated code", "Mobile: 91-9876543210", "91 9876543210", true},
		{"newline separated code", "+1\n9876543210", "1 9876543210", true},
		{"pincode next to phone", "Pune - 411001 9876543210", "9876543210", true},
		{"pincode on previous line", "Pune 411001\n9876543210", "9876543210", true},
		{"too short", "call 98765", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Phone(tt.input)
			assert.Equal(t, tt.ok, got.OK())
			assert.Equal(t, tt.want, got.Or(""))
		})
	}
}

func TestPhoneMatch_SpanCoversPlus(t *testing.T) {
	e := New(nil)
	text := "Call +91 9876543210 now"

	m, ok := e.PhoneMatch(text).Value()
	require.True(t, ok)
	assert.Equal(t, "+91 9876543210", text[m.Start:m.End])
	assert.Equal(t, "91 9876543210", m.Number)
}

func TestPhoneMatch_SpanSkipsSeparator(t *testing.T) {
	e := New(nil)
	text := "Mobile 9876543210"

	m, ok := e.PhoneMatch(text).Value()
	require.True(t, ok)
	assert.Equal(t, "9876543210", text[m.Start:m.End])
}

func TestExperienceDuration(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name    string
		input   string
		amount  float64
		literal string
		found   bool
	}{
		{"years", "I have 5 years of experience", 5, "5 years", true},
		{"decimal plus", "Overall 3.5+ Years in QA", 3.5, "3.5+ Years", true},
		{"months", "Internship of 6 months", 6, "6 months", true},
		{"single year", "1 year at Acme", 1, "1 year", true},
		{"line break inside", "total 4\nyears", 4, "4 years", true},
		{"first match wins", "2 years at A, 7 years at B", 2, "2 years", true},
		{"no match", "fresher", 0, "0", false},
		{"empty", "", 0, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExperienceDuration(tt.input)
			assert.Equal(t, tt.found, got.Found)
			assert.InDelta(t, tt.amount, got.Amount, 1e-9)
			assert.Equal(t, tt.literal, got.Literal)
		})
	}
}

func TestOptional(t *testing.T) {
	some := Some("x")
	v, ok := some.Value()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, "x", some.Or("y"))

	none := None[int]()
	assert.False(t, none.OK())
	assert.Equal(t, 7, none.Or(7))
}
