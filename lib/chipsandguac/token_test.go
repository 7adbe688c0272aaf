package chipsandguac

import (
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/home.html
var homePage []byte

func TestActionToken(t *testing.T) {
	token, ok, err := actionToken(homePage)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-home", token)
}

func TestActionTokenAbsent(t *testing.T) {
	page := []byte(`<html><body><input name="other" value="x"/></body></html>`)
	token, ok, err := actionToken(page)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, token)

	_, err = requireActionToken(page)
	require.Error(t, err)
}

func TestActionTokenEmptyDocument(t *testing.T) {
	token, ok, err := actionToken(nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, token)
}
