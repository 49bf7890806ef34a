package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryIdentity(t *testing.T) {
	remote := Hero{ID: 1011334, HeroFields: HeroFields{Name: "3-D Man"}}
	local := CustomHero{ID: "custom-1", HeroFields: HeroFields{Name: "Mine"}, Custom: true}

	var entries []Entry = []Entry{remote, local}

	assert.Equal(t, "1011334", entries[0].GetID())
	assert.False(t, entries[0].IsLocal())
	assert.Equal(t, "custom-1", entries[1].GetID())
	assert.True(t, entries[1].IsLocal())
	assert.Equal(t, "Mine", entries[1].GetName())
}

func TestIDSpaces(t *testing.T) {
	assert.True(t, IsCustomID("custom-1700000000000"))
	assert.False(t, IsCustomID("1011334"))

	n, ok := ParseRemoteID("1011334")
	assert.True(t, ok)
	assert.Equal(t, 1011334, n)

	for _, id := range []string{"custom-1", "", "abc", "0", "-5"} {
		_, ok := ParseRemoteID(id)
		assert.False(t, ok, id)
	}
}

func TestHeroPatchApply(t *testing.T) {
	base := HeroFields{
		Name:        "A",
		Description: "desc",
		Thumbnail:   Thumbnail{Path: "http://x", Extension: "jpg"},
		Comics:      Availability{Available: 1},
	}

	assert.True(t, HeroPatch{}.IsEmpty())
	assert.Equal(t, base, HeroPatch{}.Apply(base))

	desc := "new"
	got := HeroPatch{Description: &desc}.Apply(base)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "new", got.Description)
	assert.Equal(t, base.Thumbnail, got.Thumbnail)

	other := HeroFields{Name: "B", Stories: Availability{Available: 7}}
	full := PatchFrom(other)
	assert.False(t, full.IsEmpty())
	assert.Equal(t, other, full.Apply(base))
}

func TestCustomHeroJSONLayout(t *testing.T) {
	hero := CustomHero{
		ID: "custom-1",
		HeroFields: HeroFields{
			Name:      "Test",
			Thumbnail: Thumbnail{Path: "http://x", Extension: "jpg"},
			Comics:    Availability{Available: 1},
		},
		Custom: true,
	}

	data, err := json.Marshal(hero)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "custom-1", raw["id"])
	assert.Equal(t, true, raw["isCustom"])
	assert.Equal(t, "Test", raw["name"])
	assert.Equal(t, map[string]any{"available": float64(1)}, raw["comics"])
	assert.Equal(t, map[string]any{"path": "http://x", "extension": "jpg"}, raw["thumbnail"])
}
