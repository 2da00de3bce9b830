package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/yelp-go/pkg/auth"
	"gopkg.in/yaml.v3"
)

// credentialsFile accepts both a flat layout and one nested under "yelp".
type credentialsFile struct {
	auth.Credentials `yaml:",inline"`
	Yelp             *auth.Credentials `json:"yelp" yaml:"yelp"`
}

// LoadCredentials reads OAuth credentials from a YAML or JSON file.
func LoadCredentials(path string) (auth.Credentials, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return auth.Credentials{}, errors.New("credentials file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	file, err := parseCredentials(raw, filepath.Ext(path))
	if err != nil {
		return auth.Credentials{}, err
	}
	if file.Yelp != nil {
		return *file.Yelp, nil
	}
	return file.Credentials, nil
}

func parseCredentials(data []byte, ext string) (credentialsFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out credentialsFile
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return credentialsFile{}, errors.New("credentials file format not recognized (expected YAML or JSON)")
}
