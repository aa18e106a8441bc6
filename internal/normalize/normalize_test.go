package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLabel_StripsNonAlphabetic(t *testing.T) {
	assert.Equal(t, "itemmeta", CleanLabel("item_meta[21]"))
	assert.Equal(t, "wpcfrecaptcharesponse", CleanLabel("wpcf7-recaptcha-response"))
	assert.Equal(t, "Phone Number", CleanLabel("Phone Number:"))
	assert.Equal(t, "Email Address", CleanLabel("Email Address *"))
}

func TestCleanLabel_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "First Name", CleanLabel("  First \t\n Name  "))
	assert.Equal(t, "Full Name", CleanLabel("Full Name"))
}

func TestCleanLabel_EmptyResults(t *testing.T) {
	assert.Equal(t, "", CleanLabel(""))
	assert.Equal(t, "", CleanLabel("123-456[]"))
	assert.Equal(t, "", CleanLabel("   "))
}
