package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bytes", []byte("Laptop Pro"), "Laptop Pro"},
		{"date", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "2024-02-29"},
		{"timestamp", time.Date(2024, 2, 29, 13, 5, 0, 0, time.UTC), "2024-02-29T13:05:00Z"},
		{"int", int64(3), int64(3)},
		{"float", 2.5, 2.5},
		{"bool", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.in))
		})
	}
}

func TestIsDecimalType(t *testing.T) {
	assert.True(t, IsDecimalType("decimal"))
	assert.True(t, IsDecimalType("NEWDECIMAL"))
	assert.True(t, IsDecimalType("SMALLMONEY"))
	assert.False(t, IsDecimalType("FLOAT8"))
	assert.False(t, IsDecimalType(""))
}

func TestParseDecimal(t *testing.T) {
	assert.Equal(t, 1234.5, ParseDecimal([]byte("1234.50")))
	assert.Equal(t, -3.0, ParseDecimal(" -3 "))
	assert.Equal(t, "abc", ParseDecimal([]byte("abc")))
	assert.Equal(t, int64(4), ParseDecimal(int64(4)))
	assert.Nil(t, ParseDecimal(nil))
}
