package model

import (
	"encoding/json"
	"fmt"
)

// TimeUnknown is the placeholder substituted for project timestamps
// absent from stored data that predates them.
const TimeUnknown = "Unknown"

// Project is a named grouping of files plus cosmetic metadata.
type Project struct {
	// ID is the opaque unique identifier, assigned at creation.
	ID string `json:"id"`

	// Name is required and non-empty.
	Name string `json:"name"`

	// Description is optional display text.
	Description string `json:"desc"`

	// IconPath optionally references a locally stored image. The image
	// is not owned by the project; it lives in external storage.
	IconPath string `json:"icon"`

	// CreatedAt is set once at creation.
	CreatedAt string `json:"created"`

	// LastModified is refreshed on every metadata or file-set edit.
	LastModified string `json:"modified"`

	// Files is the ordered list of files owned by this project.
	Files []File `json:"files"`
}

// projectAlias mirrors Project with pointer fields so decoding can
// substitute defaults for fields absent from older stored data.
type projectAlias struct {
	ID           *string `json:"id"`
	Name         *string `json:"name"`
	Description  *string `json:"desc"`
	IconPath     *string `json:"icon"`
	CreatedAt    *string `json:"created"`
	LastModified *string `json:"modified"`
	Files        []File  `json:"files"`
}

// UnmarshalJSON decodes a Project, requiring id and name. Optional
// fields absent from the input take their documented defaults rather
// than failing the decode.
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw projectAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == nil {
		return fmt.Errorf("project entry missing id")
	}
	if raw.Name == nil {
		return fmt.Errorf("project %s missing name", *raw.ID)
	}

	p.ID = *raw.ID
	p.Name = *raw.Name

	p.Description = ""
	if raw.Description != nil {
		p.Description = *raw.Description
	}
	p.IconPath = ""
	if raw.IconPath != nil {
		p.IconPath = *raw.IconPath
	}
	p.CreatedAt = TimeUnknown
	if raw.CreatedAt != nil {
		p.CreatedAt = *raw.CreatedAt
	}
	p.LastModified = TimeUnknown
	if raw.LastModified != nil {
		p.LastModified = *raw.LastModified
	}
	p.Files = raw.Files
	return nil
}
