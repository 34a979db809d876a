package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWordSeparator(t *testing.T) {
	for _, r := range " \t\n.,!?;:\")]}" {
		assert.True(t, IsWordSeparator(r), "%q should end a word", r)
	}
	for _, r := range "abz'-0" {
		assert.False(t, IsWordSeparator(r), "%q should not end a word", r)
	}
}

func TestIsValidPrefix(t *testing.T) {
	valid := []string{"h", "th", "don't", "Hello"}
	for _, s := range valid {
		assert.True(t, IsValidPrefix(s), "%q should be completable", s)
	}
	invalid := []string{"", "1234", "a1b", "foo.bar", "dddd", "'''"}
	for _, s := range invalid {
		assert.False(t, IsValidPrefix(s), "%q should not be completable", s)
	}
}

func TestIsRepetitive(t *testing.T) {
	assert.True(t, IsRepetitive("aaa"))
	assert.False(t, IsRepetitive("aa"))
	assert.False(t, IsRepetitive("aab"))
}

func TestCasePattern(t *testing.T) {
	assert.Equal(t, "There", CasePatternOf("Teh").Apply("there"))
	assert.Equal(t, "THERE", CasePatternOf("TEH").Apply("there"))
	assert.Equal(t, "there", CasePatternOf("teh").Apply("there"))
	assert.Equal(t, "", CasePatternOf("Teh").Apply(""))
}
