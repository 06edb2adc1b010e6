package pubview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/radovskyb/watcher"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/eringen/pubview/content"
)

// Import loads the pipeline export in dir into s, replacing what was there.
func Import(ctx context.Context, s *Store, dir string) (content.Export, error) {
	exp, err := content.Load(dir)
	if err != nil {
		return content.Export{}, fmt.Errorf("load %s: %w", dir, err)
	}
	if err := s.ReplaceAll(ctx, exp.Posts, exp.Tags); err != nil {
		return content.Export{}, fmt.Errorf("store %s: %w", dir, err)
	}
	return exp, nil
}

// ImportContent imports dir into the App's store, copies its assets into the
// static directory and drops every cached view of the old corpus.
func (a *App) ImportContent(ctx context.Context, dir string) error {
	ctx, span := tracer().Start(ctx, "ImportContent")
	defer span.End()
	span.SetAttributes(attribute.String("content.dir", dir))

	start := time.Now()
	exp, err := Import(ctx, a.Store, dir)
	if err == nil {
		err = content.CopyAssets(dir, a.staticDir)
	}
	a.metrics.importDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import failed")
		a.metrics.imports.WithLabelValues("error").Inc()
		return err
	}

	a.Cache.Invalidate()
	a.images.Reset()
	a.metrics.imports.WithLabelValues("ok").Inc()
	if n, err := a.Store.CountPosts(ctx); err == nil {
		a.metrics.postsLoaded.Set(float64(n))
	}
	span.SetAttributes(attribute.Int("content.posts", len(exp.Posts)))
	slog.Info("content imported", "dir", dir, "posts", len(exp.Posts), "tags", len(exp.Tags), "took", time.Since(start))
	return nil
}

// watchContent re-imports dir whenever it changes. The returned function
// stops the watcher.
func (a *App) watchContent(dir string) (func(), error) {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Rename, watcher.Move, watcher.Remove)

	go func() {
		for {
			select {
			case ev := <-w.Event:
				slog.Info("content changed", "path", ev.Path, "op", ev.Op.String())
				if err := a.ImportContent(context.Background(), dir); err != nil {
					slog.Error("content re-import failed", "dir", dir, "error", err)
				}
			case err := <-w.Error:
				slog.Error("content watcher", "error", err)
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	go func() {
		if err := w.Start(200 * time.Millisecond); err != nil {
			slog.Error("content watcher stopped", "error", err)
		}
	}()
	slog.Info("watching content", "dir", dir)
	return w.Close, nil
}
