package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/adapters/memory"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScript(t *testing.T, fs *memory.FS, path string, opts ...runtime.LoaderOption) *runtime.Script {
	t.Helper()
	s, err := newLoader(opts...).LoadScript(fs.Locate(path))
	require.NoError(t, err)
	return s
}

func TestScript_PlayMacroNotFound(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "name m1\nkey_type A\n\nname m2\nkey_type B\n",
	})
	s := loadScript(t, fs, "main.txt")
	assert.Equal(t, []string{"m1", "m2"}, s.MacroNames())

	surface := memory.NewSurface()
	for _, name := range []string{"m3", "", "M1"} {
		err := s.PlayMacro(context.Background(), surface, name, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound, "macro %q", name)
	}
	assert.Empty(t, surface.Events())
}

func TestScript_DuplicateNamesShadow(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "name m\nset x 1\n\nname m\nset x 2\n",
	})
	s := loadScript(t, fs, "main.txt")
	require.NoError(t, s.PlayMacro(context.Background(), memory.NewSurface(), "m", 1))

	x, err := s.Variables().Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1, x, "first definition wins")
}

func TestScript_PlayTimes(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "set n n + 1\n\nname other\nset n 100\n",
	})
	s := loadScript(t, fs, "main.txt")
	s.Variables().Set("n", 0)

	require.NoError(t, s.Play(context.Background(), memory.NewSurface(), 3))
	n, _ := s.Variables().Get("n")
	assert.Equal(t, 3, n)

	require.NoError(t, s.Play(context.Background(), memory.NewSurface(), 0))
	n, _ = s.Variables().Get("n")
	assert.Equal(t, 3, n)
}

func TestScript_Recursion(t *testing.T) {
	tests := map[string]map[string]string{
		"self": {
			"main.txt": "name loop\nplay ->loop\n",
		},
		"mutual": {
			"main.txt":  "play lib/b.txt\n",
			"lib/b.txt": "play /main.txt\n",
		},
	}

	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			const limit = 6
			enters := 0
			hooks := domain.LifecycleHooks{
				OnMacroEnter: func(context.Context, *domain.MacroEvent) { enters++ },
			}
			fs := memory.NewFS(files)
			s := loadScript(t, fs, "main.txt",
				runtime.WithRecursionLimit(limit),
				runtime.WithLifecycleHooks(hooks))

			for attempt := range 2 {
				enters = 0
				err := s.Play(context.Background(), memory.NewSurface(), 1)
				require.ErrorIs(t, err, domain.ErrRecursionExceeded, "attempt %d", attempt)
				assert.Equal(t, limit-1, enters, "the limit-th increment fails")
				assert.Zero(t, s.Loader().Guard().Depth(), "guard returns to its baseline")
			}
		})
	}
}

func TestScript_CrossScriptPlay(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "set a 3\nplay lib/util.txt:x=a:y=4->sum\nplay lib/util.txt:x=1:y=1 2 a == 3\nplay lib/util.txt 1 a != 3\n",
		"lib/util.txt": "name first\nmouse_move 0 0\n\nname sum\nset z x + y\nmouse_move z z\n",
	})
	s := loadScript(t, fs, "main.txt")

	surface := memory.NewSurface()
	require.NoError(t, s.Play(context.Background(), surface, 1))

	assert.Equal(t, []memory.Event{
		{Kind: memory.MouseMove, X: 7, Y: 7},
		{Kind: memory.MouseMove},
		{Kind: memory.MouseMove},
	}, surface.Events())

	assert.False(t, s.Variables().Contains("z"), "callee variables are isolated")
}

func TestScript_CurrentScriptSpecs(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "name start\nplay ->inc 2\nplay -> 1 n < 0\n\nname inc\nset n n + 1\n",
	})
	s := loadScript(t, fs, "main.txt")
	s.Variables().Set("n", 0)

	require.NoError(t, s.Play(context.Background(), memory.NewSurface(), 1))
	n, _ := s.Variables().Get("n")
	assert.Equal(t, 2, n)
}

func TestScript_Exit(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "set code 3\nkey_type A\nexit code\nkey_type B\n",
	})
	s := loadScript(t, fs, "main.txt")

	surface := memory.NewSurface()
	err := s.Play(context.Background(), surface, 1)
	code, ok := domain.IsExit(err)
	require.True(t, ok)
	assert.Equal(t, 3, code)
	assert.Len(t, surface.Events(), 2)
	assert.Zero(t, s.Loader().Guard().Depth())
}

func TestScript_MissingCallee(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "play nowhere.txt\n",
	})
	s := loadScript(t, fs, "main.txt")
	err := s.Play(context.Background(), memory.NewSurface(), 1)
	assert.ErrorIs(t, err, domain.ErrIO)
}
