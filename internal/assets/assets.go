// Package assets ships the data files the toolkit falls back to when the
// operator supplies no override: the return-app reference mapping and the
// title-classification prompt template.
package assets

import (
	"embed"
	"errors"
	"fmt"

	"github.com/alnah/go-outreach/internal/yamlutil"
)

//go:embed data/*
var data embed.FS

// TitlesMarker is the substring of the prompt template replaced with the
// batch of job titles at request time.
const TitlesMarker = "%TITLES%"

// Sentinel errors for asset operations.
var (
	// ErrAssetRead indicates an embedded asset could not be read. Seeing
	// it means the binary was built without the data files.
	ErrAssetRead = errors.New("failed to read embedded asset")

	// ErrMappingParse indicates the embedded return-app mapping is not
	// valid YAML.
	ErrMappingParse = errors.New("failed to parse return-app mapping")
)

// ReturnAppMapping returns the embedded competitor-to-canonical-name
// table. Keys are the app listings as store intelligence exports spell
// them; values are the short names used in reports and merge fields.
func ReturnAppMapping() (map[string]string, error) {
	raw, err := data.ReadFile("data/return_apps.yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: return_apps.yaml", ErrAssetRead)
	}

	mapping := make(map[string]string)
	if err := yamlutil.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingParse, err)
	}
	return mapping, nil
}

// TitlePrompt returns the embedded classification prompt template. The
// template carries a TitlesMarker placeholder for the batch of titles.
func TitlePrompt() (string, error) {
	raw, err := data.ReadFile("data/title_prompt.txt")
	if err != nil {
		return "", fmt.Errorf("%w: title_prompt.txt", ErrAssetRead)
	}
	return string(raw), nil
}
