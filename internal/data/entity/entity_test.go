package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	assert.Equal(t, GenderFemale, ParseGender(" Female "))
	assert.Equal(t, GenderOther, ParseGender("other"))
	assert.Equal(t, GenderUnknown, ParseGender(""))
	assert.Equal(t, GenderUnknown, ParseGender("x"))
	assert.False(t, GenderUnknown.Known())
}

func TestGenderSet(t *testing.T) {
	s := NewGenderSet(GenderMale, GenderFemale, GenderMale)
	assert.Len(t, s, 2)
	assert.Equal(t, []string{"female", "male"}, s.Strings())

	var empty GenderSet
	u := empty.Union(NewGenderSet(GenderOther))
	assert.True(t, u.Has(GenderOther))
	assert.False(t, empty.Has(GenderOther))

	assert.Equal(t, NewGenderSet(GenderMale, GenderUnknown), GenderSetFromStrings([]string{"male", "?"}))
}
