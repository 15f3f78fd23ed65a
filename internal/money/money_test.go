package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "no fraction", input: "45", want: 4500},
		{name: "single fraction digit", input: "4.5", want: 450},
		{name: "third digit rounds half up", input: "1.005", want: 101},
		{name: "third digit below half truncates", input: "1.004", want: 100},
		{name: "zero", input: "0", want: 0},
		{name: "leading whitespace", input: " 7.20 ", want: 720},
		{name: "empty", input: "", wantErr: true},
		{name: "negative rejected", input: "-1.00", wantErr: true},
		{name: "explicit plus rejected", input: "+1.00", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
		{name: "letters", input: "12a.00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFloat(t *testing.T) {
	t.Run("should round half up", func(t *testing.T) {
		got, err := ParseFloat(12.345)
		assert.NoError(t, err)
		assert.Equal(t, Cents(1235), got)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := ParseFloat(-0.01)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "45.20", Cents(4520).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "0.00", Cents(0).String())
}

func TestCents_Float(t *testing.T) {
	assert.Equal(t, 45.2, Cents(4520).Float())
}
