package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forniture-store/backend/internal/domain/shared"
)

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "digits", raw: "01310100", want: "01310100"},
		{name: "masked", raw: "01310-100", want: "01310100"},
		{name: "dotted", raw: "01.310-100", want: "01310100"},
		{name: "blank", raw: "   ", want: ""},
		{name: "too short", raw: "0131010", wantErr: true},
		{name: "too long", raw: "013101001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePostalCode(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidPostalCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPostalCode(t *testing.T) {
	assert.Equal(t, "01310-100", FormatPostalCode("01310100"))
	assert.Equal(t, "123", FormatPostalCode("123"))
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(11) 98765-4321")
	require.NoError(t, err)
	assert.Equal(t, "11987654321", got)
	assert.Equal(t, "(11) 98765-4321", FormatPhone(got))

	got, err = NormalizePhone("11 3333-4444")
	require.NoError(t, err)
	assert.Equal(t, "(11) 3333-4444", FormatPhone(got))

	got, err = NormalizePhone("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizePhone("12345")
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)
}

func TestNormalizeState(t *testing.T) {
	got, err := NormalizeState(" sp ")
	require.NoError(t, err)
	assert.Equal(t, "SP", got)

	got, err = NormalizeState("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeState("XX")
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)
	assert.Len(t, BrazilianStates, 27)
}
