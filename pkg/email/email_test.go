package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "u@x.com", Normalize("  U@X.com "))
	assert.Equal(t, "u@x.com", Normalize("u@x.com"))
}

func TestValidate(t *testing.T) {
	valid := []string{"u@x.com", "first.last@sub.example.org", "a+tag@x.co"}
	for _, addr := range valid {
		assert.NoError(t, Validate(addr), addr)
	}

	invalid := []string{"", "no-at-sign", "@x.com", "u@", "u@nodot", "u@.com", "u@x.com."}
	for _, addr := range invalid {
		assert.Error(t, Validate(addr), addr)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", DisplayName("ada.lovelace@x.com"))
	assert.Equal(t, "Grace", DisplayName("grace@x.com"))
	assert.Equal(t, "User", DisplayName(""))
}
