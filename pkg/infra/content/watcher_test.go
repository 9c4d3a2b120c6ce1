package content_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/folioworks/folio/pkg/infra/cache"
	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/folioworks/folio/pkg/infra/cache/mocks"
	infraContent "github.com/folioworks/folio/pkg/infra/content"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWatcher_SyncPublishesChanges(t *testing.T) {
	ctx := context.Background()
	root := seed(t)
	repo := infraContent.NewFileRepository(logrus.New(), root)
	pub := mocks.NewEventPublisher(t)

	w := infraContent.NewWatcher(logrus.New(), repo, pub, root, 10*time.Millisecond)
	require.NoError(t, w.Prime(ctx))

	changes, err := w.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)

	writeFile(t, root, "research/new.json", `{"id": "r2", "title": "Second study", "url": "/research/second"}`)
	pub.EXPECT().Publish(mock.Anything, cache.ContentChannel, event.ContentChangedEvent{
		ItemID:   "r2",
		ItemType: content.TypeResearch,
		Action:   content.ActionCreated,
		Title:    "Second study",
		URL:      "/research/second",
	}).Return(nil).Once()
	pub.EXPECT().Publish(mock.Anything, cache.ContentChannel, event.ReindexRequestedEvent{Reason: "content changed"}).Return(nil).Once()

	changes, err = w.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, content.ActionCreated, changes[0].Action)
}

func TestWatcher_RunDebouncesFileEvents(t *testing.T) {
	root := seed(t)
	repo := infraContent.NewFileRepository(logrus.New(), root)
	bus := cache.NewLocalEventBus(logrus.New())
	w := infraContent.NewWatcher(logrus.New(), repo, bus, root, 50*time.Millisecond)
	require.NoError(t, w.Prime(context.Background()))

	reindex := make(chan event.ReindexRequestedEvent, 4)
	cache.RegisterEventSubscriber[event.ReindexRequestedEvent](bus, reindexFunc(func(ev event.ReindexRequestedEvent) { reindex <- ev }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Listen(ctx, cache.ContentChannel)
	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, root, "blog/one.md", "---\ntitle: One\n---\nfirst")
	writeFile(t, root, "blog/two.md", "---\ntitle: Two\n---\nsecond")

	select {
	case <-reindex:
	case <-time.After(3 * time.Second):
		t.Fatal("no reindex request after file changes")
	}

	cancel()
	assert.NoError(t, <-runDone)
}

func writeProjects(t *testing.T, root string, n int, titlePrefix string) {
	t.Helper()
	items := make([]map[string]string, n)
	for i := range items {
		items[i] = map[string]string{
			"id":    fmt.Sprintf("p%03d", i),
			"title": fmt.Sprintf("%s %d", titlePrefix, i),
			"url":   fmt.Sprintf("/projects/p%03d", i),
		}
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)
	writeFile(t, root, "projects/bulk.json", string(raw))
}

func TestWatcher_BulkChangeDeliversEveryEvent(t *testing.T) {
	const n = 300
	root := t.TempDir()
	writeProjects(t, root, n, "Project")
	repo := infraContent.NewFileRepository(logrus.New(), root)
	bus := cache.NewLocalEventBus(logrus.New())
	w := infraContent.NewWatcher(logrus.New(), repo, bus, root, time.Millisecond)
	require.NoError(t, w.Prime(context.Background()))

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(kind string) {
		mu.Lock()
		order = append(order, kind)
		mu.Unlock()
	}
	cache.RegisterEventSubscriber[event.ReindexRequestedEvent](bus, reindexFunc(func(event.ReindexRequestedEvent) { record("reindex") }))
	cache.RegisterEventSubscriber[event.ContentChangedEvent](bus, changedFunc(func(event.ContentChangedEvent) { record("changed") }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Listen(ctx, cache.ContentChannel)

	writeProjects(t, root, n, "Renamed")
	changes, err := w.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, changes, n)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == n+1
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "reindex", order[0])
	for _, kind := range order[1:] {
		assert.Equal(t, "changed", kind)
	}
}

type changedFunc func(event.ContentChangedEvent)

func (f changedFunc) OnEvent(_ context.Context, ev event.ContentChangedEvent) error {
	f(ev)
	return nil
}

type reindexFunc func(event.ReindexRequestedEvent)

func (f reindexFunc) OnEvent(_ context.Context, ev event.ReindexRequestedEvent) error {
	f(ev)
	return nil
}
