package business

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestStoreGetMissingReturnsDefault(t *testing.T) {
	store, _ := newTestStore(t)

	p, err := store.Get(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile("org-1"), p)
}

func TestStoreSetAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	fixed := time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	p := DefaultProfile("org-1")
	p.Name = "Bloom Dental"
	p.Industry = industry.Dental
	p.PolicyStyle = templates.StyleStrict
	require.NoError(t, store.Set(context.Background(), p))

	assert.True(t, mr.Exists("business:profile:org-1"))

	got, err := store.Get(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Bloom Dental", got.Name)
	assert.Equal(t, industry.Dental, got.Industry)
	assert.Equal(t, templates.StyleStrict, got.PolicyStyle)
	assert.True(t, got.UpdatedAt.Equal(fixed))
}

func TestStoreSetRequiresOrg(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.Set(context.Background(), &Profile{}))
}

func TestStoreGetCorruptJSON(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("business:profile:org-1", "{not json"))

	_, err := store.Get(context.Background(), "org-1")
	assert.Error(t, err)
}

func TestStoreTemplateDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	p := DefaultProfile("org-1")
	p.Name = "Fix-It Auto"
	p.Phone = "+16045551234"
	p.Industry = industry.AutoRepair
	require.NoError(t, store.Set(context.Background(), p))

	d, err := store.TemplateDefaults(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Fix-It Auto", d.BusinessName)
	assert.Equal(t, "+1 (604) 555-1234", d.Phone)
	assert.Equal(t, industry.AutoRepair, d.Industry)
	assert.Equal(t, templates.ToneFriendly, d.Tone)
}
