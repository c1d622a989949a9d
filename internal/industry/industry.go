// Package industry holds the per-industry vocabulary used to phrase reminder
// text for different kinds of service businesses.
package industry

import "strings"

// Key identifies a supported industry.
type Key string

const (
	Dental      Key = "dental"
	Salon       Key = "salon"
	AutoRepair  Key = "auto_repair"
	Medical     Key = "medical"
	Spa         Key = "spa"
	PetGrooming Key = "pet_grooming"
	Fitness     Key = "fitness"
	Tutoring    Key = "tutoring"
	Other       Key = "other"
)

// Terms are the nouns substituted into generated text.
type Terms struct {
	ClientWord   string `json:"client_word"`
	ServiceWord  string `json:"service_word"`
	LocationWord string `json:"location_word"`
}

type entry struct {
	terms Terms
	icon  string
}

var order = []Key{Dental, Salon, AutoRepair, Medical, Spa, PetGrooming, Fitness, Tutoring, Other}

var table = map[Key]entry{
	Dental:      {Terms{"patient", "appointment", "clinic"}, "🦷"},
	Salon:       {Terms{"client", "appointment", "salon"}, "💇"},
	AutoRepair:  {Terms{"customer", "service appointment", "shop"}, "🚗"},
	Medical:     {Terms{"patient", "appointment", "office"}, "🩺"},
	Spa:         {Terms{"guest", "treatment", "spa"}, "💆"},
	PetGrooming: {Terms{"pet parent", "grooming appointment", "salon"}, "🐾"},
	Fitness:     {Terms{"member", "session", "studio"}, "💪"},
	Tutoring:    {Terms{"student", "session", "center"}, "📚"},
	Other:       {Terms{"customer", "appointment", "business"}, "📋"},
}

// Keys returns every supported industry in display order.
func Keys() []Key {
	out := make([]Key, len(order))
	copy(out, order)
	return out
}

// Parse normalizes s to a known key. Empty or unknown values become Other.
func Parse(s string) Key {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[k]; ok {
		return k
	}
	return Other
}

// Valid reports whether k is one of the supported keys.
func (k Key) Valid() bool {
	_, ok := table[k]
	return ok
}

// Terms returns the vocabulary for k, falling back to Other.
func (k Key) Terms() Terms {
	return lookup(k).terms
}

// Icon returns the decorative glyph printed on reminder cards.
func (k Key) Icon() string {
	return lookup(k).icon
}

func lookup(k Key) entry {
	if e, ok := table[k]; ok {
		return e
	}
	return table[Other]
}

// PluralClient pluralizes the client word by appending "s". This only holds
// for the regular nouns in the table above; irregular words added later need
// their own plural form.
func (t Terms) PluralClient() string {
	return t.ClientWord + "s"
}
