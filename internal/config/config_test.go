package config

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Setenv("BOARD_WIDTH", "")
	t.Setenv("BOARD_HEIGHT", "")
	t.Setenv("BOARD_MINES", "")
	b, err := NewBoard()
	require.NoError(t, err)
	assert.Equal(t, DefaultBoard, *b)

	t.Setenv("BOARD_WIDTH", "9")
	t.Setenv("BOARD_HEIGHT", "9")
	t.Setenv("BOARD_MINES", "10")
	b, err = NewBoard()
	require.NoError(t, err)
	assert.Equal(t, Board{Width: 9, Height: 9, MineCount: 10}, *b)

	t.Setenv("BOARD_MINES", "81")
	_, err = NewBoard()
	assert.Error(t, err)

	t.Setenv("BOARD_MINES", "many")
	_, err = NewBoard()
	assert.Error(t, err)
}

func TestBoardValidate(t *testing.T) {
	testCases := []struct {
		board Board
		ok    bool
	}{
		{Board{Width: 40, Height: 20, MineCount: 99}, true},
		{Board{Width: 2, Height: 1, MineCount: 1}, true},
		{Board{Width: 0, Height: 5, MineCount: 1}, false},
		{Board{Width: 5, Height: -1, MineCount: 1}, false},
		{Board{Width: 5, Height: 5, MineCount: 0}, false},
		{Board{Width: 5, Height: 5, MineCount: 25}, false},
	}
	for _, test := range testCases {
		err := test.board.Validate()
		if test.ok {
			assert.NoError(t, err, "%+v", test.board)
		} else {
			assert.Error(t, err, "%+v", test.board)
		}
	}
}

func TestLoadClient(t *testing.T) {
	dir := t.TempDir()

	c, err := LoadClient(filepath.Join(dir, "missing.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultClient(), *c)

	_, err = LoadClient(filepath.Join(dir, "missing.yaml"), true)
	assert.Error(t, err)

	path := filepath.Join(dir, "mines.yaml")
	data := []byte(`
board:
  width: 16
  height: 16
  mines: 40
seed: 7
input_window: 250ms
log:
  file: mines.log
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err = LoadClient(path, true)
	require.NoError(t, err)
	assert.Equal(t, Board{Width: 16, Height: 16, MineCount: 40}, c.Board)
	require.NotNil(t, c.Seed)
	assert.Equal(t, uint64(7), *c.Seed)
	assert.Equal(t, 250*time.Millisecond, c.InputWindow)
	assert.Equal(t, 30*time.Millisecond, c.SweepDelay)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 3, c.Log.MaxBackups)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log:\n  level: loud\n"), 0o600))
	_, err = LoadClient(bad, true)
	assert.Error(t, err)
}

func TestSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	d, err := SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, defaultSessionTTL, d)

	t.Setenv("SESSION_TTL", "90m")
	d, err = SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	t.Setenv("SESSION_TTL", "-1s")
	_, err = SessionTTL()
	assert.Error(t, err)
}

func TestCookiesRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	j := NewJWTFromKeys(key, &key.PublicKey, time.Hour)
	cookies := &Cookies{Secure: true, SameSite: http.SameSiteStrictMode, jwt: j}

	rec := httptest.NewRecorder()
	claims := NewPlayerClaims(7, "alice", time.Now(), j.TokenLifetime())
	require.NoError(t, cookies.Issue(rec, claims))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	got, err := cookies.ParsePlayerClaims(req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.PlayerId)
	assert.Equal(t, "alice", got.Username)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	forged := &Cookies{jwt: NewJWTFromKeys(other, &key.PublicKey, time.Hour)}
	rec = httptest.NewRecorder()
	require.NoError(t, forged.Issue(rec, claims))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	_, err = cookies.ParsePlayerClaims(req)
	assert.Error(t, err)
}

func TestNewJWTNotConfigured(t *testing.T) {
	for _, key := range []string{"JWT_PRIVATE_KEY", "JWT_PRIVATE_KEY_FILE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	_, err := NewJWT()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	assert.Empty(t, AllowedOrigins())
	ws := NewWebSocket(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.True(t, ws.Upgrader.CheckOrigin(req))

	t.Setenv("ALLOWED_ORIGINS", "https://mines.example, ,http://localhost:5173")
	origins := AllowedOrigins()
	assert.Equal(t, []string{"https://mines.example", "http://localhost:5173"}, origins)
	ws = NewWebSocket(origins)
	assert.False(t, ws.Upgrader.CheckOrigin(req))
	req.Header.Set("Origin", "https://mines.example")
	assert.True(t, ws.Upgrader.CheckOrigin(req))
}
