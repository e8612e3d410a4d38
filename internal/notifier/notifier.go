package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/paytick/internal/constants"
	"github.com/julianstephens/paytick/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	// ErrTrayNotRunning is returned when no paytick-tray instance can receive notifications
	ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")
)

// Notifier delivers desktop notifications through the paytick-tray webhook.
type Notifier struct {
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is what the tray advertises in its lockfile
type endpoint struct {
	port   int
	pid    int
	secret string
}

func (e endpoint) url() string {
	return "http://127.0.0.1:" + strconv.Itoa(e.port)
}

func New() *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 2 * time.Second},
		retries:    constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Notify shows text as a desktop notification. Failures are returned for the
// caller to log; nothing about the ticker depends on delivery.
func (n *Notifier) Notify(text string) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	ep, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	for attempt := 1; ; attempt++ {
		err = n.send(ep, payload)
		if err == nil || attempt >= n.retries {
			return err
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", err)
		time.Sleep(n.retryDelay)
	}
}

// TrayAvailable reports whether a validated tray process is advertising a webhook
func TrayAvailable() error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	_, err = findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	return err
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
// The tray's settings.json may point the lockfile at a custom directory.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}

	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
			return *store.Settings.LockfileDir, nil
		}
	}

	return trayConfigDir, nil
}

// parseLockfile reads "port|pid|secret"
func parseLockfile(content string) (endpoint, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return endpoint{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}

	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}

	return endpoint{port: port, pid: pid, secret: secret}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	ep, err := parseLockfile(string(content))
	if err != nil {
		return endpoint{}, err
	}

	process, err := findProcessFunc(ep.pid)
	if err != nil || process == nil {
		return endpoint{}, fmt.Errorf("%w (stale lockfile for PID %d)", ErrTrayNotRunning, ep.pid)
	}

	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", ep.pid, constants.TrayAppExecutable, process.Executable())
	}

	return ep, nil
}

func (n *Notifier) send(ep endpoint, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, ep.url(), bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Paytick-Secret", ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
