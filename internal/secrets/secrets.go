// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files,
// keeping webhook URLs out of the config file and the shell history. Each
// file is one secret: the filename is the key and the trimmed contents are
// the value.
//
// Supported key files: slack-webhook-url, slack-channel.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WebhookURLKey is the key file holding the Slack incoming-webhook URL.
const WebhookURLKey = "slack-webhook-url"

// ChannelKey is the key file holding an optional channel override.
const ChannelKey = "slack-channel"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	return secrets, nil
}
