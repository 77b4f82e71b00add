package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString(t *testing.T) {
	empty := ""
	phone := "555-0100"

	assert.Nil(t, NullableString(nil))
	assert.Nil(t, NullableString(&empty))
	require.NotNil(t, NullableString(&phone))
	assert.Equal(t, "555-0100", *NullableString(&phone))
}

func TestNullableIntString(t *testing.T) {
	year := 2023

	assert.Nil(t, NullableIntString(nil))
	assert.Equal(t, "2023", *NullableIntString(&year))
}

func TestParseOptionalInt64(t *testing.T) {
	for _, in := range []string{"", "0"} {
		v, err := ParseOptionalInt64(in)
		assert.NoError(t, err)
		assert.Nil(t, v, in)
	}

	v, err := ParseOptionalInt64("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), *v)

	_, err = ParseOptionalInt64("abc")
	assert.Error(t, err)
}

func TestParseOptionalInt(t *testing.T) {
	v, err := ParseOptionalInt("2027")
	require.NoError(t, err)
	assert.Equal(t, 2027, *v)

	v, err = ParseOptionalInt("0")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, ParseDuration("15m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
