package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/folioworks/folio/pkg/infra/cache"
	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads content when files change and publishes a reindex request
// followed by one ContentChangedEvent per changed item.
type Watcher struct {
	logger    *logrus.Logger
	repo      content.Repository
	publisher cache.EventPublisher
	root      string
	debounce  time.Duration

	mu   sync.Mutex
	last []content.Item
}

func NewWatcher(
	logger *logrus.Logger,
	repo content.Repository,
	publisher cache.EventPublisher,
	root string,
	debounce time.Duration,
) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		root:      root,
		debounce:  debounce,
	}
}

// Prime records the current content as the baseline without publishing.
func (w *Watcher) Prime(ctx context.Context) error {
	items, err := w.repo.Load(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.last = items
	w.mu.Unlock()
	return nil
}

// Sync reloads content, diffs it against the previous snapshot and
// publishes the changes.
func (w *Watcher) Sync(ctx context.Context) ([]content.Change, error) {
	items, err := w.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload content: %w", err)
	}

	w.mu.Lock()
	changes := content.Diff(w.last, items)
	w.last = items
	w.mu.Unlock()

	if len(changes) == 0 {
		return nil, nil
	}
	// reindex first so webhook receivers that query search see the new content
	if err := w.publisher.Publish(ctx, cache.ContentChannel, event.ReindexRequestedEvent{Reason: "content changed"}); err != nil {
		w.logger.WithError(err).Error("failed to publish reindex request")
	}
	for _, ch := range changes {
		if err := w.publisher.Publish(ctx, cache.ContentChannel, event.NewContentChangedEvent(ch)); err != nil {
			w.logger.WithError(err).WithField("item_id", ch.Item.ID).Error("failed to publish content change")
		}
	}
	w.logger.WithField("changes", len(changes)).Info("content changes published")
	return changes, nil
}

// Run watches the content directories until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create content watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	for _, dir := range Dirs() {
		w.watchDir(fsw, filepath.Join(w.root, dir))
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 && filepath.Dir(ev.Name) == filepath.Clean(w.root) {
				w.watchDir(fsw, ev.Name)
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("content watcher error")
		case <-timer.C:
			pending = false
			if _, err := w.Sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.WithError(err).Error("content sync failed")
			}
		}
	}
}

func (w *Watcher) watchDir(fsw *fsnotify.Watcher, dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := fsw.Add(dir); err != nil {
		w.logger.WithError(err).WithField("dir", dir).Warn("failed to watch content directory")
	}
}
