package domain

import "fmt"

// Book is a catalog record for a book on the shelf. Progress and LastReadAt
// are written back by the reading session as the user moves through the book.
type Book struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	Path       string `json:"path"`
	CoverPath  string `json:"coverPath,omitempty"`
	Progress   string `json:"progress,omitempty"`
	LastReadAt int64  `json:"lastReadAt,omitempty"`
	AddedAt    int64  `json:"addedAt"`
}

// Validate checks the fields required to catalog a book.
func (b *Book) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("book id is empty: %w", ErrInvalidInput)
	}
	if b.Title == "" {
		return fmt.Errorf("book title is empty: %w", ErrInvalidInput)
	}
	if b.Path == "" {
		return fmt.Errorf("book path is empty: %w", ErrInvalidInput)
	}
	return nil
}

// Finished reports whether the catalog considers the book fully read.
func (b *Book) Finished() bool {
	return b.Progress == "100%"
}
