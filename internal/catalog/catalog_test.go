package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 6, c.Len())

	seen := make(map[string]bool)
	for _, v := range c.All() {
		assert.False(t, seen[v.ID], "duplicate id %s", v.ID)
		seen[v.ID] = true
		assert.Positive(t, v.NightlyPrice, v.ID)
		assert.Positive(t, v.MaxGuests, v.ID)
	}

	v, err := c.Get("blue-mountains-retreat")
	require.NoError(t, err)
	assert.Equal(t, "Blue Mountains Corporate Retreat", v.Title)
	assert.Equal(t, 680, v.NightlyPrice)
	assert.Equal(t, 12, v.MaxGuests)
}

func TestCatalogGetMissing(t *testing.T) {
	_, err := Default().Get("nope")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCatalogIsImmutable(t *testing.T) {
	c := Default()

	all := c.All()
	all[0].Title = "changed"
	all[0].Amenities[0] = "changed"

	v, err := c.Get(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Mountains Corporate Retreat", v.Title)
	assert.Equal(t, "Conference Space", v.Amenities[0])

	src := []Venue{{ID: "a", Amenities: []string{"Bar"}}}
	c2 := New(src)
	src[0].Amenities[0] = "Spa"
	got, err := c2.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Bar", got.Amenities[0])
}

func TestHasAmenityContaining(t *testing.T) {
	v := Venue{Amenities: []string{"City Views", "Premium Bar"}}
	assert.True(t, v.HasAmenityContaining("Bar", "Catering"))
	assert.False(t, v.HasAmenityContaining("Catering"))
}

func TestFormatAUD(t *testing.T) {
	assert.Equal(t, "$680", FormatAUD(680))
	assert.Equal(t, "$1,360", FormatAUD(1360))
}
