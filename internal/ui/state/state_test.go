package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockhub/internal/domain"
)

func TestFocusWraps(t *testing.T) {
	s := NewAppState([]string{"employee", "branch"})
	assert.Equal(t, "employee", s.FocusedName())

	s.FocusPrev()
	assert.Equal(t, FocusSubmit, s.FocusedName())

	s.FocusNext()
	s.FocusNext()
	assert.Equal(t, "branch", s.FocusedName())

	assert.True(t, s.FocusOn(FocusNotes))
	assert.Equal(t, FocusNotes, s.FocusedName())
	assert.False(t, s.FocusOn("missing"))
}

func TestLoadingSources(t *testing.T) {
	s := NewAppState(nil)
	s.SetLoading([]domain.Source{domain.SourceEmployees, domain.SourceBranches}, true)
	assert.True(t, s.IsLoading())
	assert.Equal(t, []domain.Source{domain.SourceBranches, domain.SourceEmployees}, s.Loading())

	s.SetLoading([]domain.Source{domain.SourceBranches}, false)
	assert.Equal(t, []domain.Source{domain.SourceEmployees}, s.Loading())

	s.ClearLoading()
	assert.False(t, s.IsLoading())
}

func TestStatusMessages(t *testing.T) {
	s := NewAppState(nil)
	s.SetError("boom")
	assert.True(t, s.StatusIsError)
	s.SetStatus("ok")
	assert.False(t, s.StatusIsError)
	assert.Equal(t, "ok", s.StatusMessage)
}
