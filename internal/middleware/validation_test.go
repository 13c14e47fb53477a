package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("wireless earbuds"))
	assert.Error(t, ValidateQuery(""))
	assert.Error(t, ValidateQuery("   \t"))
	assert.Error(t, ValidateQuery(strings.Repeat("x", 2001)))
	assert.Error(t, ValidateQuery("bad\xff"))
}

func TestValidateChatMessage(t *testing.T) {
	assert.NoError(t, ValidateChatMessage("any deals today?"))
	assert.Error(t, ValidateChatMessage("  "))
	assert.Error(t, ValidateChatMessage(strings.Repeat("x", 10001)))
}

func TestValidateSessionID(t *testing.T) {
	assert.NoError(t, ValidateSessionID("11111111-1111-7111-8111-111111111111"))
	assert.Error(t, ValidateSessionID("not-a-uuid"))
	assert.Error(t, ValidateSessionID(""))
}

func TestValidateProductID(t *testing.T) {
	assert.NoError(t, ValidateProductID("p1"))
	assert.Error(t, ValidateProductID(" "))
	assert.Error(t, ValidateProductID(strings.Repeat("x", 129)))
}
