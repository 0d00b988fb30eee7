package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitelist_Verify(t *testing.T) {
	whitelist := NewWhitelist([]string{"www.gov.pl", "obywatel.gov.pl"})

	t.Run("member passes", func(t *testing.T) {
		assert.NoError(t, whitelist.Verify("www.gov.pl"))
	})

	t.Run("non-member fails with typed error", func(t *testing.T) {
		err := whitelist.Verify("evil.example.com")
		require.Error(t, err)

		var notWhitelisted *NotWhitelistedError
		require.ErrorAs(t, err, &notWhitelisted)
		assert.Equal(t, "evil.example.com", notWhitelisted.Domain)
	})

	t.Run("match is exact, no case folding", func(t *testing.T) {
		assert.Error(t, whitelist.Verify("WWW.GOV.PL"))
	})

	t.Run("match is exact, no protocol stripping", func(t *testing.T) {
		assert.Error(t, whitelist.Verify("https://www.gov.pl"))
	})
}

func TestLoadWhitelist(t *testing.T) {
	t.Run("loads newline-delimited file, skipping blanks", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "domains.txt")
		content := "www.gov.pl\n\nobywatel.gov.pl\n   \npodatki.gov.pl\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		whitelist, err := LoadWhitelist(path)
		require.NoError(t, err)

		assert.Equal(t, 3, whitelist.Len())
		assert.True(t, whitelist.Contains("www.gov.pl"))
		assert.True(t, whitelist.Contains("obywatel.gov.pl"))
		assert.True(t, whitelist.Contains("podatki.gov.pl"))
	})

	t.Run("trims surrounding whitespace per line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "domains.txt")
		require.NoError(t, os.WriteFile(path, []byte("  www.gov.pl  \n"), 0o600))

		whitelist, err := LoadWhitelist(path)
		require.NoError(t, err)
		assert.True(t, whitelist.Contains("www.gov.pl"))
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := LoadWhitelist(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
	})
}
