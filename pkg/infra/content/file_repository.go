package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var errNoFrontMatter = errors.New("missing front matter")

type source struct {
	dir      string
	ext      string
	itemType content.Type
	parse    func(path string, data []byte, t content.Type) ([]content.Item, error)
}

var sources = []source{
	{dir: "blog", ext: ".md", itemType: content.TypeBlog, parse: parseMarkdown},
	{dir: "hardware", ext: ".md", itemType: content.TypeHardware, parse: parseMarkdown},
	{dir: "projects", ext: ".json", itemType: content.TypeProject, parse: parseJSON},
	{dir: "research", ext: ".json", itemType: content.TypeResearch, parse: parseJSON},
}

// Dirs lists the content directories relative to the root.
func Dirs() []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.dir
	}
	return out
}

type FileRepository struct {
	logger *logrus.Logger
	root   string
}

func NewFileRepository(logger *logrus.Logger, root string) content.Repository {
	return &FileRepository{logger: logger, root: root}
}

// Load walks every content directory in a fixed order. Files are read in
// lexical order so repeated loads produce the same item order.
func (r *FileRepository) Load(ctx context.Context) ([]content.Item, error) {
	var items []content.Item
	for _, src := range sources {
		dir := filepath.Join(r.root, src.dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if e.IsDir() || filepath.Ext(e.Name()) != src.ext {
				continue
			}
			path := filepath.Join(dir, e.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				r.logger.WithError(err).WithField("path", path).Warn("skipping unreadable content file")
				continue
			}
			parsed, err := src.parse(path, data, src.itemType)
			if err != nil {
				r.logger.WithError(err).WithField("path", path).Warn("skipping malformed content file")
				continue
			}
			items = append(items, parsed...)
		}
	}
	return items, nil
}

type frontMatter struct {
	content.Item `yaml:",inline"`
	Slug         string `yaml:"slug"`
}

func parseMarkdown(path string, data []byte, t content.Type) ([]content.Item, error) {
	head, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}
	var fm frontMatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}

	it := fm.Item
	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if it.ID == "" {
		it.ID = string(t) + ":" + slug
	}
	if it.URL == "" {
		it.URL = "/" + string(t) + "/" + slug
	}
	it.Type = t
	it.Content = strings.TrimSpace(string(body))
	return []content.Item{it}, nil
}

func splitFrontMatter(data []byte) ([]byte, []byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, nil, errNoFrontMatter
	}
	rest := normalized[4:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, errNoFrontMatter
	}
	head := rest[:end]
	body := rest[end+4:]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return head, body, nil
}

// parseJSON accepts a single object or an array of objects.
func parseJSON(_ string, data []byte, t content.Type) ([]content.Item, error) {
	trimmed := bytes.TrimSpace(data)
	var items []content.Item
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
	} else {
		var it content.Item
		if err := json.Unmarshal(trimmed, &it); err != nil {
			return nil, err
		}
		items = []content.Item{it}
	}
	for i := range items {
		if items[i].Type == "" {
			items[i].Type = t
		}
	}
	return items, nil
}
