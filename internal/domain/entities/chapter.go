// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrUnknownField = errors.New("unknown chapter field")

// Chapter represents one chapter (surah) of the Quran as listed in the index.
type Chapter struct {
	ID              int    `json:"id"`              // chapter number (from 1 to 114)
	Name            string `json:"name"`            // chapter name
	Transliteration string `json:"transliteration"` // latin transliteration of the name
	Juz             int    `json:"juz"`             // juz the chapter starts in
	VerseCount      int    `json:"total_verses"`    // number of verses
}

// Field identifies a chapter attribute that can be asked or answered.
type Field string

const (
	FieldUnset         Field = ""
	FieldChapterName   Field = "chapter_name"
	FieldChapterNumber Field = "chapter_number"
	FieldVerseCount    Field = "verse_count"
)

// Fields lists every field a quiz can be configured with.
var Fields = []Field{FieldChapterName, FieldChapterNumber, FieldVerseCount}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	switch f {
	case FieldChapterName, FieldChapterNumber, FieldVerseCount:
		return true
	default:
		return false
	}
}

// Value returns the display string of the given field.
func (c Chapter) Value(f Field) (string, error) {
	switch f {
	case FieldChapterName:
		return c.Name, nil
	case FieldChapterNumber:
		return strconv.Itoa(c.ID), nil
	case FieldVerseCount:
		return strconv.Itoa(c.VerseCount), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
}
