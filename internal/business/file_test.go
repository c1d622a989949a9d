package business

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadProfileFile(t *testing.T) {
	path := writeProfile(t, `
name: Paws & Claws
industry: pet_grooming
phone: "604-555-1234"
policy_style: lenient
no_show_fee: "25"
receptionist:
  call_window_start: "08:30"
  call_window_end: "17:00"
  remind_hours_before: 48
`)

	p, err := LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Paws & Claws", p.Name)
	assert.Equal(t, industry.PetGrooming, p.Industry)
	assert.Equal(t, "+6045551234", p.Phone)
	assert.Equal(t, templates.StyleLenient, p.PolicyStyle)
	assert.Equal(t, templates.Fee25, p.NoShowFee)
	assert.Equal(t, templates.ToneFriendly, p.DefaultTone)
	assert.Equal(t, 48, p.Receptionist.RemindHoursBefore)
	assert.True(t, p.IncludeLateArrival)
}

func TestLoadProfileFileInvalid(t *testing.T) {
	_, err := LoadProfileFile(writeProfile(t, "policy_style: harsh\n"))
	assert.Error(t, err)

	_, err = LoadProfileFile(writeProfile(t, "name: [unterminated\n"))
	assert.Error(t, err)

	_, err = LoadProfileFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
