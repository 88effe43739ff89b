package notes

import (
	"errors"
	"strings"

	"healthdash/pkg"
)

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	Id      int     `json:"id"`
	Date    pkg.Day `json:"date"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
}

// Filter returns the notes whose title or content contains the query,
// case-insensitive. An empty query matches everything.
func Filter(notes []Note, query string) []Note {
	if query == "" {
		return notes
	}

	query = strings.ToLower(query)
	var matched []Note
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), query) ||
			strings.Contains(strings.ToLower(note.Content), query) {
			matched = append(matched, note)
		}
	}
	return matched
}
