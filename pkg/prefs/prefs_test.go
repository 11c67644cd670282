package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
)

func backends(t *testing.T) map[string]func() Backend {
	t.Helper()
	dir := t.TempDir()
	return map[string]func() Backend{
		"memory": func() Backend { return NewMemoryBackend() },
		"file":   func() Backend { return NewFileBackend(filepath.Join(dir, "nested", "preferences.json")) },
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, newBackend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewStore(newBackend())

			assert.Equal(t, "npm", Get(s, "packageManager", "npm"), "absent key yields default")
			assert.False(t, s.Has("packageManager"))

			require.NoError(t, Set(s, "packageManager", "yarn"))
			require.NoError(t, Set(s, "bumpLockfile", true))
			require.NoError(t, Set(s, "ignoredLibs", []string{"react", "react-dom"}))

			assert.Equal(t, "yarn", Get(s, "packageManager", "npm"))
			assert.True(t, Get(s, "bumpLockfile", false))
			assert.Equal(t, []string{"react", "react-dom"}, Get(s, "ignoredLibs", []string{}))
			assert.True(t, s.Has("packageManager"))

			require.NoError(t, s.Remove("packageManager"))
			assert.Equal(t, "npm", Get(s, "packageManager", "npm"))
		})
	}
}

func TestStore_UndecodableValueYieldsDefault(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.SetItem("bumpLockfile", `"yes please"`))
	require.NoError(t, b.SetItem("deep", `{not json`))

	s := NewStore(b)
	assert.False(t, Get(s, "bumpLockfile", false))
	assert.True(t, Get(s, "deep", true))
}

func TestStore_OnChange(t *testing.T) {
	s := NewStore(NewMemoryBackend())

	var changed []string
	s.OnChange(func(key string) { changed = append(changed, key) })

	require.NoError(t, Set(s, KeyIgnoredLibs, []string{"react-dom"}))
	require.NoError(t, Set(s, KeyIgnoredLibs, []string{"react-dom", "typescript"}))
	require.NoError(t, s.Remove(KeyDeep))

	assert.Equal(t, []string{KeyIgnoredLibs, KeyIgnoredLibs, KeyDeep}, changed)
}

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	first := NewStore(NewFileBackend(path))
	require.NoError(t, Set(first, KeyPackageManager, generator.Yarn))
	require.NoError(t, Set(first, KeyIgnoredLibs, []string{"@types/react"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"packageManager":"yarn","ignoredLibs":["@types/react"]}`, string(data))

	second := NewStore(NewFileBackend(path))
	assert.Equal(t, generator.Yarn, Get(second, KeyPackageManager, generator.NPM))
	assert.Equal(t, []string{"@types/react"}, Get(second, KeyIgnoredLibs, []string{}))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileBackend_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2"), 0644))

	s := NewStore(NewFileBackend(path))
	assert.Equal(t, generator.NPM, Get(s, KeyPackageManager, generator.NPM))

	// the next write replaces the broken file
	require.NoError(t, Set(s, KeyDeep, true))
	fresh := NewStore(NewFileBackend(path))
	assert.True(t, Get(fresh, KeyDeep, false))
}

func TestFileBackend_RejectsInvalidJSON(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "preferences.json"))
	assert.Error(t, b.SetItem("deep", "not json"))
}

func TestLoad_Defaults(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	p := Load(s, Defaults())

	assert.Equal(t, generator.NPM, p.PackageManager)
	assert.Equal(t, filter.CapMajor, p.SeverityCap)
	assert.Empty(t, p.IgnoredLibs)
	assert.NotNil(t, p.IgnoredLibs)
	assert.False(t, p.BumpLockfile)
	assert.False(t, p.Deep)
}

func TestLoad_InvalidEnumFallsBack(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.SetItem(KeyPackageManager, `"pnpm"`))
	require.NoError(t, b.SetItem(KeySeverityCap, `"breaking"`))
	require.NoError(t, b.SetItem(KeyIgnoredLibs, `null`))

	p := Load(NewStore(b), Defaults())
	assert.Equal(t, generator.NPM, p.PackageManager)
	assert.Equal(t, filter.CapMajor, p.SeverityCap)
	assert.NotNil(t, p.IgnoredLibs)
}

func TestSave_WritesOnlyChanges(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	p := Defaults()
	require.NoError(t, Save(s, p))
	for _, key := range Keys {
		assert.True(t, s.Has(key), key)
	}

	var changed []string
	s.OnChange(func(key string) { changed = append(changed, key) })

	p.PackageManager = generator.Yarn
	p.IgnoredLibs = []string{"react"}
	require.NoError(t, Save(s, p))

	assert.ElementsMatch(t, []string{KeyPackageManager, KeyIgnoredLibs}, changed)
	assert.Equal(t, p, Load(s, Defaults()))
}

func TestSave_ReplacesInvalidStoredValues(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.SetItem(KeyPackageManager, `"pnpm"`))
	require.NoError(t, b.SetItem(KeySeverityCap, `42`))
	require.NoError(t, b.SetItem(KeyIgnoredLibs, `null`))
	require.NoError(t, b.SetItem(KeyDeep, `"yes please"`))
	s := NewStore(b)

	p := Defaults()
	p.PackageManager = generator.Yarn
	p.SeverityCap = filter.CapMinor
	require.NoError(t, Save(s, p))

	// config defaults that disagree with every saved value
	fallback := Preferences{
		PackageManager: generator.NPM,
		SeverityCap:    filter.CapPatch,
		IgnoredLibs:    []string{"react"},
		Deep:           true,
	}
	assert.Equal(t, p, Load(s, fallback))

	raw, ok, err := b.GetItem(KeyIgnoredLibs)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, raw)
}

func TestSetString(t *testing.T) {
	s := NewStore(NewMemoryBackend())

	require.NoError(t, SetString(s, KeyPackageManager, "yarn"))
	require.NoError(t, SetString(s, KeySeverityCap, "patch"))
	require.NoError(t, SetString(s, KeyIgnoredLibs, "react, react-dom,,react"))
	require.NoError(t, SetString(s, KeyBumpLockfile, "true"))
	require.NoError(t, SetString(s, KeyDeep, "1"))

	p := Load(s, Defaults())
	assert.Equal(t, Preferences{
		PackageManager: generator.Yarn,
		SeverityCap:    filter.CapPatch,
		IgnoredLibs:    []string{"react", "react-dom"},
		BumpLockfile:   true,
		Deep:           true,
	}, p)

	assert.Error(t, SetString(s, KeyPackageManager, "pnpm"))
	assert.Error(t, SetString(s, KeySeverityCap, "all"))
	assert.Error(t, SetString(s, KeyDeep, "maybe"))
	assert.Error(t, SetString(s, "theme", "dark"))
}

func TestReset(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	require.NoError(t, SetString(s, KeyPackageManager, "yarn"))
	require.NoError(t, Reset(s))
	assert.Equal(t, Defaults(), Load(s, Defaults()))
}

func TestPreferences_RulesAndOptions(t *testing.T) {
	p := Preferences{
		PackageManager: generator.Yarn,
		SeverityCap:    filter.CapMinor,
		IgnoredLibs:    []string{"react"},
		BumpLockfile:   true,
		Deep:           true,
	}

	assert.Equal(t, filter.Rules{Ignored: []string{"react"}, Cap: filter.CapMinor}, p.Rules())
	assert.Equal(t, generator.Options{PackageManager: generator.Yarn, Deep: true, BumpLockfile: true}, p.Options())
}

func TestReadOnlyBackend(t *testing.T) {
	inner := NewMemoryBackend()
	require.NoError(t, inner.SetItem(KeyPackageManager, `"yarn"`))

	s := NewStore(ReadOnlyBackend{inner})
	assert.Equal(t, generator.Yarn, Get(s, KeyPackageManager, generator.NPM))

	require.NoError(t, Set(s, KeyPackageManager, generator.NPM))
	require.NoError(t, s.Remove(KeyPackageManager))

	raw, ok, err := inner.GetItem(KeyPackageManager)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"yarn"`, raw)
}
