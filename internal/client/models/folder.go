package models

import "time"

// FolderColor is a display-only tag from a fixed palette. Unknown values are
// tolerated: rendering falls back to the default color instead of failing.
type FolderColor string

const (
	ColorBlue   FolderColor = "blue"
	ColorGreen  FolderColor = "green"
	ColorPurple FolderColor = "purple"
	ColorOrange FolderColor = "orange"
	ColorPink   FolderColor = "pink"
	ColorGray   FolderColor = "gray"
)

func (c FolderColor) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorPurple, ColorOrange, ColorPink, ColorGray:
		return true
	}
	return false
}

// Normalize returns c if it belongs to the palette and the default otherwise.
func (c FolderColor) Normalize() FolderColor {
	if c.Valid() {
		return c
	}
	return ColorBlue
}

// Folder is a named grouping of prompts. Deleting a folder never cascades:
// referencing prompts have their FolderID cleared instead.
type Folder struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"ownerId,omitempty"`
	Name       string      `json:"name"`
	Color      FolderColor `json:"color"`
	CreatedAt  time.Time   `json:"createdAt"`
	OrderIndex int         `json:"orderIndex"`
}

func (f Folder) Clone() Folder {
	return f
}
