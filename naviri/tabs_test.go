package naviri

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTabs() *Tabs {
	return NewTabs(newTestSession)
}

func TestTabs_StartWithOneFreshTab(t *testing.T) {
	tabs := newTestTabs()

	assert.Equal(t, 1, tabs.Len())
	assert.Equal(t, 0, tabs.ActiveIndex())
	assert.Equal(t, NewTabTitle, tabs.Title(0))
}

func TestTabs_OpenReusesFreshTab(t *testing.T) {
	tabs := newTestTabs()

	s, req := tabs.Open("Array", true)
	finish(s, req)

	assert.Equal(t, 1, tabs.Len())
	assert.Equal(t, "Array", tabs.Title(0))

	s, req = tabs.Open("String", true)
	finish(s, req)

	assert.Equal(t, 2, tabs.Len())
	assert.Equal(t, 1, tabs.ActiveIndex())
	assert.Same(t, s, tabs.Active())
	assert.Equal(t, "String", tabs.Title(1))
	assert.Equal(t, "Array", tabs.Title(0), "the other tab is untouched")
}

func TestTabs_OpenInSameTab(t *testing.T) {
	tabs := newTestTabs()
	finish(tabs.Open("Array", false))
	finish(tabs.Open("String", false))

	assert.Equal(t, 1, tabs.Len())
	assert.Equal(t, "String", tabs.Title(0))
	assert.True(t, tabs.Active().CanGoBack())
}

func TestTabs_LastTabIsNeverClosed(t *testing.T) {
	tabs := newTestTabs()

	assert.False(t, tabs.CloseActive())
	assert.Equal(t, 1, tabs.Len())
}

func TestTabs_CloseAdjustsActive(t *testing.T) {
	tabs := newTestTabs()
	first := tabs.Active()
	tabs.New()
	third := tabs.New()
	require.Equal(t, 2, tabs.ActiveIndex())

	assert.True(t, tabs.Close(1))
	assert.Equal(t, 1, tabs.ActiveIndex())
	assert.Same(t, third, tabs.Active())

	assert.True(t, tabs.Close(1))
	assert.Equal(t, 0, tabs.ActiveIndex())
	assert.Same(t, first, tabs.Active())

	assert.False(t, tabs.Close(5))
}

func TestTabs_CloseCancelsLoading(t *testing.T) {
	tabs := newTestTabs()
	tabs.New()
	s, req := tabs.Open("Array", false)

	require.Same(t, s, tabs.Active())
	require.True(t, tabs.Close(tabs.ActiveIndex()))

	_, err := req.Run()
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, tabs.sessions, s)
}

func TestTabs_Cycle(t *testing.T) {
	tabs := newTestTabs()
	tabs.New()
	tabs.New()

	tabs.Cycle(1)
	assert.Equal(t, 0, tabs.ActiveIndex())
	tabs.Cycle(-1)
	assert.Equal(t, 2, tabs.ActiveIndex())

	tabs.SetActive(1)
	assert.Equal(t, 1, tabs.ActiveIndex())
	tabs.SetActive(7)
	assert.Equal(t, 1, tabs.ActiveIndex())
	assert.Same(t, tabs.sessions[1], tabs.Active())
}
