package metadata

import (
	"encoding/json"
)

// Package is the subset of a Cargo package descriptor the metadata service returns for a
// program.
type Package struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description *string         `json:"description"`
	License     *string         `json:"license"`
	Repository  *string         `json:"repository"`
	Metadata    json.RawMessage `json:"metadata"`
}

// DockerImage reads [package.metadata.entropy-program] docker-image when it is a string.
func (p *Package) DockerImage() (image string, ok bool) {
	if len(p.Metadata) == 0 {
		return
	}

	var m struct {
		EntropyProgram struct {
			DockerImage *string `json:"docker-image"`
		} `json:"entropy-program"`
	}
	if err := json.Unmarshal(p.Metadata, &m); err != nil {
		return "", false
	}

	// Absent and null values both leave the pointer nil.
	if m.EntropyProgram.DockerImage == nil {
		return "", false
	}

	return *m.EntropyProgram.DockerImage, true
}
