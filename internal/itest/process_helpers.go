// If you are AI: This file provides helper functions for building and running the scriptvar binary in tests.

package itest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BuildBinary compiles cmd/scriptvar into dir and returns the binary path.
func BuildBinary(dir string) (string, error) {
	binPath := filepath.Join(dir, "scriptvar")
	buildCmd := exec.Command("go", "build", "-o", binPath, "../../cmd/scriptvar")
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		return "", fmt.Errorf("build binary: %w", err)
	}
	return binPath, nil
}

// FreePort asks the kernel for an unused TCP port.
func FreePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("find free port: %w", err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// StartServer runs "scriptvar serve" with the given config as a subprocess.
func StartServer(ctx context.Context, binPath, configPath string) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, binPath, "serve", "--config", configPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	return cmd, nil
}

// WaitForReady waits for the readiness endpoint to return 200.
// Returns an error if the endpoint is not ready within the timeout.
func WaitForReady(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/readyz", port)

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("readiness endpoint not available after %v", timeout)
}

// WriteConfig writes a server config listening on port and serving the given documents.
// documents maps a document name to its file path.
func WriteConfig(dir string, port int, documents map[string]string) (string, error) {
	content := fmt.Sprintf("server:\n  http_port: %d\nlog:\n  level: debug\n", port)
	if len(documents) > 0 {
		content += "documents:\n"
		for name, path := range documents {
			content += fmt.Sprintf("  - name: %s\n    path: %s\n    var_name: %s\n", name, path, name)
		}
	}

	configPath := filepath.Join(dir, "scriptvar.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return configPath, nil
}
