package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"grace.hopper@campus.edu",
		"a.turing@cs.university.edu",
		"first_last+tag@campus.edu",
		"STUDENT@CAMPUS.EDU",
		"  spaced@campus.edu  ",
		"ada@university.edu.tr",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"grace.hopper@gmail.com",
		"grace@campus.education",
		"grace@campus.edu.toolong",
		"@campus.edu",
		"grace@.edu",
		"no-at-sign.edu",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "grace@campus.edu", NormalizeEmail("  Grace@Campus.EDU "))
}

func TestIsValidAge(t *testing.T) {
	assert.False(t, IsValidAge(16))
	assert.True(t, IsValidAge(17))
	assert.True(t, IsValidAge(25))
	assert.False(t, IsValidAge(26))
}

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())

	assert.True(t, NewStringValidation("ok").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("x").WithMinLength(2).Validate())

	title := strings.Repeat("a", TitleMaxLength)
	assert.True(t, NewStringValidation(title).WithMaxLength(TitleMaxLength).Validate())
	assert.False(t, NewStringValidation(title+"a").WithMaxLength(TitleMaxLength).Validate())

	assert.True(t, NewStringValidation("student@campus.edu").WithPattern(CompiledPatterns.Email).Validate())
	assert.False(t, NewStringValidation("student@gmail.com").WithPattern(CompiledPatterns.Email).Validate())
}
