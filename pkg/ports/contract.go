package ports

import (
	"io"
	"testing"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LocationFixture prepares a backend holding the given files (slash paths to contents).
// Locate builds a Location for one of those paths; Absolute returns the string a script
// would write to reference the path without relying on relative resolution.
type LocationFixture struct {
	Locate   func(path string) Location
	Absolute func(path string) string
}

// RunLocationContract runs a suite of tests to verify that a Location implementation
// adheres to the defined interface contract.
func RunLocationContract(t *testing.T, setup func(t *testing.T, files map[string]string) LocationFixture) {
	files := map[string]string{
		"scripts/main.txt":     "name main\nkey_type VK_A\n",
		"scripts/lib/util.txt": "print util\n",
		"shared.txt":           "print shared\n",
	}

	read := func(t *testing.T, loc Location) string {
		t.Helper()
		rc, err := loc.Open()
		require.NoError(t, err, "Open(%s) should not return error", loc)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}

	t.Run("Open", func(t *testing.T) {
		fx := setup(t, files)
		assert.Equal(t, files["scripts/main.txt"], read(t, fx.Locate("scripts/main.txt")))
	})

	t.Run("Refer Relative", func(t *testing.T) {
		fx := setup(t, files)
		main := fx.Locate("scripts/main.txt")
		assert.Equal(t, files["scripts/lib/util.txt"], read(t, main.Refer("lib/util.txt")))
	})

	t.Run("Refer Falls Back To Absolute", func(t *testing.T) {
		fx := setup(t, files)
		main := fx.Locate("scripts/main.txt")
		assert.Equal(t, files["shared.txt"], read(t, main.Refer(fx.Absolute("shared.txt"))))
	})

	t.Run("Refer Without Parent", func(t *testing.T) {
		fx := setup(t, files)
		shared := fx.Locate("shared.txt")
		assert.Equal(t, files["scripts/main.txt"], read(t, shared.Refer(fx.Absolute("scripts/main.txt"))))
	})

	t.Run("Open Missing", func(t *testing.T) {
		fx := setup(t, files)
		missing := fx.Locate("scripts/main.txt").Refer("missing.txt")
		_, err := missing.Open()
		assert.ErrorIs(t, err, domain.ErrIO)
	})
}
