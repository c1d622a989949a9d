package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryKeyHasVocabulary(t *testing.T) {
	for _, k := range Keys() {
		t.Run(string(k), func(t *testing.T) {
			terms := k.Terms()
			assert.NotEmpty(t, terms.ClientWord)
			assert.NotEmpty(t, terms.ServiceWord)
			assert.NotEmpty(t, terms.LocationWord)
			assert.NotEmpty(t, k.Icon())
			assert.True(t, k.Valid())
		})
	}
	assert.Len(t, Keys(), 9)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"dental", Dental},
		{"  Auto_Repair ", AutoRepair},
		{"PET_GROOMING", PetGrooming},
		{"", Other},
		{"bakery", Other},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "input %q", tt.in)
	}
}

func TestUnknownKeyFallsBackToOther(t *testing.T) {
	k := Key("plumbing")
	assert.False(t, k.Valid())
	assert.Equal(t, Other.Terms(), k.Terms())
	assert.Equal(t, "📋", k.Icon())
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "🦷", Dental.Icon())
	assert.Equal(t, "📋", Other.Icon())
}

func TestPluralClient(t *testing.T) {
	assert.Equal(t, "patients", Dental.Terms().PluralClient())
	assert.Equal(t, "pet parents", PetGrooming.Terms().PluralClient())
}

func TestKeysReturnsCopy(t *testing.T) {
	keys := Keys()
	keys[0] = "mutated"
	assert.Equal(t, Dental, Keys()[0])
}
