package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const tokenSalt = "lazycrm-keyring-salt-v1"

// deriveFilePassword builds the file-backend password from the machine
// id and the current user. It is stable across restarts but differs
// between machines, so a copied keyring file is useless elsewhere.
func deriveFilePassword() (string, error) {
	id := machineID()
	user := currentUser()

	hash := sha256.Sum256([]byte(id + user + tokenSalt))
	return base64.StdEncoding.EncodeToString(hash[:]), nil
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" { // Windows
		return u
	}
	// Containers and service accounts often run without USER set
	return fmt.Sprintf("uid-%d", os.Getuid())
}

// machineID returns a stable per-machine identifier. Every path falls
// back to the hostname rather than failing.
func machineID() string {
	var id string
	switch runtime.GOOS {
	case "linux":
		id = linuxMachineID()
	case "darwin":
		id = darwinHardwareUUID()
	case "windows":
		id = windowsMachineGUID()
	}
	if id != "" {
		return id
	}
	hostname, _ := os.Hostname()
	return hostname
}

func linuxMachineID() string {
	for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

func darwinHardwareUUID() string {
	output, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(output), "\n") {
		if !strings.Contains(line, "IOPlatformUUID") {
			continue
		}
		if _, value, ok := strings.Cut(line, "="); ok {
			return strings.Trim(strings.TrimSpace(value), "\"")
		}
	}
	return ""
}

func windowsMachineGUID() string {
	output, err := exec.Command("wmic", "csproduct", "get", "UUID").Output()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line != "UUID" {
			return line
		}
	}
	return ""
}
