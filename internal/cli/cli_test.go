package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/pkg/adapters/redis"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func quietConfig() config.Config {
	cfg := config.Default()
	cfg.Log.Level = "off"
	return cfg
}

func TestRun_TraceOutput(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.txt", "mouse_move x y\ndelay 20\nprint done\n")

	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), quietConfig(), RunOptions{
		ScriptPath: path,
		Times:      1,
		Set:        []string{"x=3", "y=4"},
		NoSleep:    true,
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "mouse_move 3 4\ndelay 20\ndone\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_NamedMacro(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.txt", "print first\n\nname second\nprint second\n")

	var stdout bytes.Buffer
	err := Run(context.Background(), quietConfig(), RunOptions{
		ScriptPath: path, Macro: "second", Times: 2, NoSleep: true,
	}, &stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "second\nsecond\n", stdout.String())
}

func TestRun_Exit(t *testing.T) {
	dir := t.TempDir()

	t.Run("Zero Is Success", func(t *testing.T) {
		path := writeScript(t, dir, "zero.txt", "print a\nexit\nprint b\n")
		var stdout bytes.Buffer
		err := Run(context.Background(), quietConfig(), RunOptions{ScriptPath: path, Times: 1, NoSleep: true}, &stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a\n", stdout.String())
	})

	t.Run("Non Zero Code", func(t *testing.T) {
		path := writeScript(t, dir, "three.txt", "exit 3\n")
		err := Run(context.Background(), quietConfig(), RunOptions{ScriptPath: path, Times: 1, NoSleep: true}, &bytes.Buffer{}, &bytes.Buffer{})
		code, ok := domain.IsExit(err)
		require.True(t, ok, "expected exit error, got %v", err)
		assert.Equal(t, 3, code)
	})
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.txt", "print hi\n")

	t.Run("Invalid Assignment", func(t *testing.T) {
		err := Run(context.Background(), quietConfig(), RunOptions{ScriptPath: path, Times: 1, Set: []string{"x"}}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Missing Script", func(t *testing.T) {
		err := Run(context.Background(), quietConfig(), RunOptions{ScriptPath: filepath.Join(dir, "nope.txt"), Times: 1}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrIO)
	})

	t.Run("Unknown Macro", func(t *testing.T) {
		err := Run(context.Background(), quietConfig(), RunOptions{ScriptPath: path, Macro: "ghost", Times: 1}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Bad Log Level", func(t *testing.T) {
		cfg := config.Default()
		cfg.Log.Level = "loud"
		err := Run(context.Background(), cfg, RunOptions{ScriptPath: path, Times: 1}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestRun_LogsCarryRunID(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.txt", "print hi\n")
	cfg := config.Default()
	cfg.Log.Format = "json"

	var stderr bytes.Buffer
	err := Run(context.Background(), cfg, RunOptions{ScriptPath: path, Times: 1}, &bytes.Buffer{}, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	for _, line := range lines {
		assert.Contains(t, line, `"run_id":"`)
	}
	assert.Contains(t, stderr.String(), `"msg":"Run finished"`)
}

func TestRun_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	repo := redis.New(mr.Addr(), "", 0)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "bots/main.txt", []byte("play lib.txt\n")))
	require.NoError(t, repo.Put(ctx, "bots/lib.txt", []byte("mouse_wheel 2\n")))

	cfg := quietConfig()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Lock = true

	var stdout bytes.Buffer
	err := Run(ctx, cfg, RunOptions{ScriptPath: "bots/main.txt", Times: 1, NoSleep: true}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "mouse_wheel 2\n", stdout.String())

	// The surface lock is released once the run ends.
	assert.False(t, mr.Exists("marionette:lock:surface"))
}

func TestRun_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := quietConfig()
	cfg.Redis.Addr = addr
	err := Run(context.Background(), cfg, RunOptions{ScriptPath: "main.txt", Times: 1}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]int
		wantErr bool
	}{
		{name: "Empty", pairs: nil, want: map[string]int{}},
		{name: "Values", pairs: []string{"x=1", " y = -2 "}, want: map[string]int{"x": 1, "y": -2}},
		{name: "Last Wins", pairs: []string{"x=1", "x=5"}, want: map[string]int{"x": 5}},
		{name: "Missing Equals", pairs: []string{"x"}, wantErr: true},
		{name: "Empty Name", pairs: []string{"=3"}, wantErr: true},
		{name: "Numeric Name", pairs: []string{"7=3"}, wantErr: true},
		{name: "Non Integer", pairs: []string{"x=abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.pairs)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.txt", "play lib/util.txt\n")
	writeScript(t, dir, "lib/util.txt", "key_type VK_A\n")
	bad := writeScript(t, dir, "bad.txt", "play ghost.txt\n")

	var out bytes.Buffer
	require.NoError(t, ValidateOnce(context.Background(), quietConfig(), good, &out))
	assert.Contains(t, out.String(), "is valid")

	out.Reset()
	err := ValidateOnce(context.Background(), quietConfig(), bad, &out)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Contains(t, out.String(), "Validation failed")
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	main := writeScript(t, dir, "main.txt", "play lib.txt->click\nplay missing.txt\n")
	writeScript(t, dir, "lib.txt", "name click\nmouse_click left\n")

	t.Run("Markdown", func(t *testing.T) {
		var out bytes.Buffer
		err := Inspect(context.Background(), quietConfig(), InspectOptions{ScriptPath: main}, &out)
		assert.ErrorIs(t, err, domain.ErrIO)
		assert.Contains(t, out.String(), "| # | Macro |")
		assert.Contains(t, out.String(), "click")
		assert.Contains(t, out.String(), "## Problems")
	})

	t.Run("Mermaid", func(t *testing.T) {
		var out bytes.Buffer
		err := Inspect(context.Background(), quietConfig(), InspectOptions{ScriptPath: main, Mermaid: true}, &out)
		assert.Error(t, err)
		assert.True(t, strings.HasPrefix(out.String(), "graph TD\n"))
		assert.Contains(t, out.String(), "classDef failed")
	})
}

func TestWatchValidate(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.txt", "print ok\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- WatchValidate(ctx, quietConfig(), path, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Waiting for changes")
	}, 2*time.Second, 10*time.Millisecond)

	writeScript(t, dir, "main.txt", "key_type NOPE\n")

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Validation failed")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchValidate_RejectsRedis(t *testing.T) {
	cfg := quietConfig()
	cfg.Redis.Addr = "localhost:6379"
	err := WatchValidate(context.Background(), cfg, "main.txt", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
