package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesToggleAddsThenRemoves(t *testing.T) {
	favs := NewFavoritesManager()
	p := product("p1", "EarBud X", "49.99")

	assert.True(t, favs.Toggle(p), "first toggle adds")
	assert.True(t, favs.IsFavorite("p1"))

	assert.False(t, favs.Toggle(p), "second toggle removes")
	assert.False(t, favs.IsFavorite("p1"))
	assert.Equal(t, 0, favs.Len())
}

func TestFavoritesTogglePairIsIdempotent(t *testing.T) {
	favs := NewFavoritesManager()
	a := product("p1", "A", "1.00")
	b := product("p2", "B", "2.00")
	favs.Toggle(a)

	favs.Toggle(b)
	favs.Toggle(b)

	assert.True(t, favs.IsFavorite("p1"))
	assert.False(t, favs.IsFavorite("p2"))
	assert.Equal(t, 1, favs.Len())
}

func TestFavoritesListKeepsAdditionOrder(t *testing.T) {
	favs := NewFavoritesManager()
	favs.Toggle(product("p2", "B", "2.00"))
	favs.Toggle(product("p1", "A", "1.00"))
	favs.Toggle(product("p3", "C", "3.00"))
	favs.Toggle(product("p1", "A", "1.00")) // remove middle

	list := favs.List()
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, "p3", list[1].ID)
}

func TestFavoritesGetReturnsBackingProduct(t *testing.T) {
	favs := NewFavoritesManager()
	p := product("p1", "EarBud X", "49.99")
	favs.Toggle(p)

	got, ok := favs.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "EarBud X", got.Name)

	_, ok = favs.Get("p2")
	assert.False(t, ok)
}
