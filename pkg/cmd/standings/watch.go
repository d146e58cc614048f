package standings

import (
	"context"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/pkg/cmd/output"
	"github.com/mpapenbr/rally-championship/pkg/season"
	"github.com/mpapenbr/rally-championship/pkg/service"
)

// watch renders the standings and renders them again after each change of
// the season file until ctx is done. Invalid season data is logged and the
// previous data is kept.
//
//nolint:whitespace,cyclop // can't make both editor and linter happy
func watch(
	ctx context.Context, w io.Writer, svc *service.StandingsService,
	opts *options, format output.Format,
) error {
	l := log.GetFromContext(ctx).Named("watch")
	file, err := filepath.Abs(opts.SeasonFile)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return err
	}
	updates := svc.Subscribe()
	defer svc.Unsubscribe(updates)

	if err := render(ctx, w, svc, opts, format); err != nil {
		return err
	}
	l.Info("watching season file", log.String("file", file))

	for {
		select {
		case <-ctx.Done():
			l.Debug("watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != file ||
				!(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			l.Debug("season file changed", log.String("op", ev.Op.String()))
			if err := reload(ctx, svc, file); err != nil {
				l.Warn("keeping previous season data", log.ErrorField(err))
			}
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			l.Debug("season updated",
				log.String("kind", string(u.Kind)), log.Uint64("version", u.Version))
			if err := render(ctx, w, svc, opts, format); err != nil {
				l.Warn("could not render standings", log.ErrorField(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.Warn("watcher error", log.ErrorField(err))
		}
	}
}

func reload(ctx context.Context, svc *service.StandingsService, file string) error {
	data, err := season.Load(file)
	if err != nil {
		return err
	}
	return svc.Reload(ctx, data)
}
