package e2e

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeMissingCredentialsExitNonZero(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	cmd := newReviewbotCmd(binaryPath, home, nil, "run")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "err: %v", err)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "level=CRITICAL")
	assert.Contains(t, stderr.String(), "missing required environment variable PRACTICUM_TOKEN")
}

func TestSmokeRunNotifiesAndStopsOnSignal(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"homeworks":[{"homework_name":"Proj1","status":"approved"}],"current_date":1700000600}`)
	}))
	t.Cleanup(api.Close)

	var mu sync.Mutex
	var sent []string
	delivered := make(chan struct{}, 1)
	bot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/botbot-token/getMe" {
			_, _ = fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"reviewbot"}}`)
			return
		}
		_ = r.ParseForm()
		mu.Lock()
		sent = append(sent, r.PostForm.Get("text"))
		mu.Unlock()
		_, _ = fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
		select {
		case delivered <- struct{}{}:
		default:
		}
	}))
	t.Cleanup(bot.Close)

	cmd := newReviewbotCmd(binaryPath, home, []string{
		"PRACTICUM_TOKEN=practicum-token",
		"TELEGRAM_TOKEN=bot-token",
		"TELEGRAM_CHAT_ID=42",
		"REVIEWBOT_ENDPOINT=" + api.URL,
		"REVIEWBOT_TELEGRAM_API_ENDPOINT=" + bot.URL + "/bot%s/%s",
		"REVIEWBOT_RETRY_PERIOD=1h",
	}, "run")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Start())

	select {
	case <-delivered:
	case <-time.After(20 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatalf("no telegram message delivered; stderr: %s", stderr.String())
	}

	require.NoError(t, cmd.Process.Signal(syscall.SIGTERM))
	require.NoError(t, cmd.Wait(), "stderr: %s", stderr.String())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"status changed for submission 'Proj1'. Review complete: the reviewer liked everything. Hooray!"}, sent)

	logData, err := os.ReadFile(filepath.Join(home, "reviewbot.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "polling stopped")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "reviewbot-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/reviewbot")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build reviewbot binary: %s", string(output))
	return binaryPath
}

// newReviewbotCmd runs the binary with a clean environment rooted at home.
func newReviewbotCmd(binaryPath, home string, extraEnv []string, args ...string) *exec.Cmd {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append([]string{
		"HOME=" + home,
		"PATH=" + os.Getenv("PATH"),
		"REVIEWBOT_LOG_FILE=" + filepath.Join(home, "reviewbot.log"),
		"REVIEWBOT_SECRETS_BACKENDS=file",
	}, extraEnv...)

	return cmd
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
