package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

func TestSession_EmptyInput(t *testing.T) {
	s := NewSession(prefs.Defaults())

	assert.Empty(t, s.Input())
	assert.Empty(t, s.Output())
	assert.NoError(t, s.Error())
	assert.True(t, s.ShowingSample())
	assert.Len(t, s.Libraries(), 8, "sample libraries are listed while nothing is pasted")
	assert.True(t, strings.HasPrefix(s.Placeholder(), "npx npm-check-updates -u babel-plugin-styled-components; npm i;"))
}

func TestSession_DiagnosticClearsOnNextValidInput(t *testing.T) {
	s := NewSession(prefs.Defaults())

	s.SetInput(reactReport)
	require.NoError(t, s.Error())
	assert.Equal(t, expectedReactOutput("npm", "4.1.2"), s.Output())
	assert.False(t, s.ShowingSample())
	assert.Len(t, s.Libraries(), 6)

	s.SetInput(reactReport + "\n    jest ^26.6.3 →")
	assert.Error(t, s.Error())
	assert.Equal(t, Diagnostic, s.Output(), "previous output is replaced, not kept")
	assert.True(t, s.ShowingSample())
	assert.Equal(t, "babel-plugin-styled-components", s.Libraries()[0].Name)

	s.SetInput(reactReport)
	assert.NoError(t, s.Error())
	assert.Equal(t, expectedReactOutput("npm", "4.1.2"), s.Output())
}

func TestSession_WhitespaceClearsDiagnostic(t *testing.T) {
	s := NewSession(prefs.Defaults())
	s.SetInput("react")
	require.Error(t, s.Error())

	s.SetInput("   \n")
	assert.NoError(t, s.Error())
	assert.Empty(t, s.Output())
	assert.False(t, s.ShowingSample(), "whitespace is a paste, not an empty field")
	assert.Empty(t, s.Libraries())

	s.SetInput("")
	assert.True(t, s.ShowingSample())
	assert.Len(t, s.Libraries(), 8)
}

func TestSession_PreferenceChangesRecompute(t *testing.T) {
	s := NewSession(prefs.Defaults())
	s.SetInput(reactReport)

	p := s.Preferences()
	p.PackageManager = generator.Yarn
	s.SetPreferences(p)
	assert.Equal(t, expectedReactOutput("yarn", "4.1.2"), s.Output())

	p.PackageManager = generator.NPM
	s.SetPreferences(p)
	assert.Equal(t, expectedReactOutput("npm", "4.1.2"), s.Output())

	p.SeverityCap = filter.CapMinor
	s.SetPreferences(p)
	assert.Empty(t, s.Output(), "every upgrade in the report is a major bump")
	for _, lib := range s.Libraries() {
		assert.True(t, lib.Disabled, lib.Name)
	}
	assert.Len(t, s.Result().Records, 6)
}
