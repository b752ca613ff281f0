package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

// NoteService handles notes
type NoteService struct {
	notes  *hook.Hook
	reader ports.Reader
	opts   Options
}

// NewNoteService creates a new note service. reader serves tag lookups
// through the multi-entry index.
func NewNoteService(notes *hook.Hook, reader ports.Reader, opts Options) *NoteService {
	return &NoteService{notes: notes, reader: reader, opts: opts.withDefaults()}
}

// ParseTags splits comma-separated input, trimming and dropping empties.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (s *NoteService) CreateNote(ctx context.Context, req ports.SaveNoteRequest) (*entities.Note, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	now := s.opts.Clock().UTC()
	note := &entities.Note{
		ID:      newID(),
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Tags:    ParseTags(req.Tags),
		Created: now,
		Updated: now,
	}

	rec, err := entities.ToRecord(note)
	if err != nil {
		return nil, err
	}
	if err := s.notes.AddItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id string, req ports.SaveNoteRequest) (*entities.Note, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	base, note, err := findAs[entities.Note](s.notes, id)
	if err != nil {
		return nil, err
	}
	note.Title = strings.TrimSpace(req.Title)
	note.Content = req.Content
	note.Tags = ParseTags(req.Tags)
	note.Updated = s.opts.Clock().UTC()

	rec, err := entities.Merge(base, note)
	if err != nil {
		return nil, err
	}
	if err := s.notes.UpdateItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	if err := s.notes.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (s *NoteService) ListNotes() ([]entities.Note, error) {
	return decodeAll[entities.Note](s.opts, schema.Notes, s.notes.Data()), nil
}

// SearchNotes matches query case-insensitively against title, content and
// tags. An empty query returns every note.
func (s *NoteService) SearchNotes(query string) ([]entities.Note, error) {
	notes, err := s.ListNotes()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes, nil
	}

	out := []entities.Note{}
	for _, n := range notes {
		if noteMatches(n, q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func noteMatches(n entities.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// NotesByTag returns the notes carrying exactly tag.
func (s *NoteService) NotesByTag(ctx context.Context, tag string) ([]entities.Note, error) {
	records, err := s.reader.GetAllByIndex(ctx, schema.Notes, "tags", tag)
	if err != nil {
		return nil, fmt.Errorf("failed to find notes by tag: %w", err)
	}
	return decodeAll[entities.Note](s.opts, schema.Notes, records), nil
}
