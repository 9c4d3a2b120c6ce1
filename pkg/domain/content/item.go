package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

type Type string

const (
	TypeBlog     Type = "blog"
	TypeProject  Type = "project"
	TypeResearch Type = "research"
	TypeHardware Type = "hardware"
)

var (
	ErrMissingID    = errors.New("item id is required")
	ErrMissingTitle = errors.New("item title is required")
	ErrMissingURL   = errors.New("item url is required")
	ErrUnknownType  = errors.New("unknown item type")
)

func (t Type) Known() bool {
	switch t {
	case TypeBlog, TypeProject, TypeResearch, TypeHardware:
		return true
	}
	return false
}

// Item is one searchable piece of portfolio content.
type Item struct {
	ID          string     `json:"id" yaml:"id"`
	Type        Type       `json:"type" yaml:"type"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category,omitempty" yaml:"category"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags"`
	URL         string     `json:"url" yaml:"url"`
	Content     string     `json:"content,omitempty" yaml:"-"`
	PublishedAt *time.Time `json:"published_at,omitempty" yaml:"published_at"`
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(i.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(i.URL) == "" {
		return ErrMissingURL
	}
	if !i.Type.Known() {
		return ErrUnknownType
	}
	return nil
}

// Hash fingerprints the fields that matter for change detection.
func (i Item) Hash() string {
	h := sha256.New()
	for _, part := range []string{
		string(i.Type), i.Title, i.Description, i.Category,
		strings.Join(i.Tags, "\x1f"), i.URL, i.Content,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Load returns every item currently available. Malformed sources are
	// skipped rather than failing the whole load.
	Load(ctx context.Context) ([]Item, error)
}
