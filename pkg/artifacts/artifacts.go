// Package artifacts builds the named payloads attached to completed skill
// outcomes.
package artifacts

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// FromJSON serializes v into a JSON artifact called name
func FromJSON(name string, v any) (skilltypes.Artifact, error) {
	if err := validateName(name); err != nil {
		return skilltypes.Artifact{}, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return skilltypes.Artifact{}, errors.Wrapf(err, "failed to serialize artifact %s", name)
	}

	return skilltypes.Artifact{
		Name:     name,
		MimeType: skilltypes.MimeTypeJSON,
		Data:     data,
	}, nil
}

// FromText creates a plain text artifact called name
func FromText(name, text string) (skilltypes.Artifact, error) {
	if err := validateName(name); err != nil {
		return skilltypes.Artifact{}, err
	}

	return skilltypes.Artifact{
		Name:     name,
		MimeType: skilltypes.MimeTypeText,
		Data:     []byte(text),
	}, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("artifact name is required")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.Errorf("artifact name %q must not contain path separators", name)
	}
	return nil
}
