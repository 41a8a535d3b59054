package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// File is a single HTML source document. It is owned by exactly one
// container at a time: either the standalone collection or one
// project's file list.
type File struct {
	// ID is the opaque unique identifier, assigned at creation.
	ID string `json:"id"`

	// Name is the user-visible file name. It is not required to be
	// unique.
	Name string `json:"name"`

	// Content is the full text body.
	Content string `json:"content"`

	// LastEdit is the creation or last-save time as a timestamp string.
	LastEdit string `json:"lastEdit"`
}

// fileAlias mirrors File with pointer fields so decoding can tell a
// missing field apart from an empty one.
type fileAlias struct {
	ID       *string `json:"id"`
	Name     *string `json:"name"`
	Content  *string `json:"content"`
	LastEdit *string `json:"lastEdit"`
}

// UnmarshalJSON decodes a File, requiring id, name, and content.
// lastEdit predates some stored data and defaults to the empty string.
func (f *File) UnmarshalJSON(data []byte) error {
	var raw fileAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == nil {
		return fmt.Errorf("file entry missing id")
	}
	if raw.Name == nil {
		return fmt.Errorf("file %s missing name", *raw.ID)
	}
	if raw.Content == nil {
		return fmt.Errorf("file %s missing content", *raw.ID)
	}

	f.ID = *raw.ID
	f.Name = *raw.Name
	f.Content = *raw.Content
	f.LastEdit = ""
	if raw.LastEdit != nil {
		f.LastEdit = *raw.LastEdit
	}
	return nil
}

// Timestamp returns the current time in the textual form entity
// timestamps are stored in.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}
