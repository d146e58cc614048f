package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/season"
	"github.com/mpapenbr/rally-championship/pkg/standings"
	"github.com/mpapenbr/rally-championship/pkg/utils/broadcast"
	"github.com/mpapenbr/rally-championship/pkg/utils/cache"
	"github.com/mpapenbr/rally-championship/pkg/utils/cache/loadercache"
)

const instrumentationName = "github.com/mpapenbr/rally-championship/pkg/service"

// allEvents selects the standings after all completed events.
const allEvents = -1

var ErrNoStore = errors.New("season store is required")

type (
	Option       func(s *StandingsService)
	snapshotKey  struct {
		version uint64
		after   int
	}
	StandingsService struct {
		store           *season.Store
		maxResults      int
		cacheExpiration time.Duration
		cache           cache.Cache[snapshotKey, *Standings]
		tracer          trace.Tracer
		computations    metric.Int64Counter
		feed            broadcast.Server[Update]
		l               *log.Logger
	}
)

func WithStore(store *season.Store) Option {
	return func(s *StandingsService) {
		s.store = store
	}
}

func WithMaxResults(n int) Option {
	return func(s *StandingsService) {
		s.maxResults = n
	}
}

func WithCacheExpiration(d time.Duration) Option {
	return func(s *StandingsService) {
		s.cacheExpiration = d
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *StandingsService) {
		s.l = l
	}
}

func NewStandingsService(opts ...Option) (*StandingsService, error) {
	ret := &StandingsService{
		maxResults:      standings.DefaultMaxResults,
		cacheExpiration: 10 * time.Minute,
		tracer:          otel.Tracer(instrumentationName),
		l:               log.Default().Named("service.standings"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.store == nil {
		return nil, ErrNoStore
	}
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"standings.computations",
		metric.WithDescription("number of standings computations"))
	if err != nil {
		return nil, err
	}
	ret.computations = counter
	ret.cache = loadercache.New(
		loadercache.WithLoader[snapshotKey, *Standings](ret.load),
		loadercache.WithExpiration[snapshotKey, *Standings](ret.cacheExpiration),
		loadercache.WithLogger[snapshotKey, *Standings](ret.l.Named("cache")),
	)
	ret.feed = broadcast.New("standings",
		broadcast.WithLogger[Update](ret.l.Named("feed")))
	return ret, nil
}

// Subscribe returns a channel which receives an Update after each change of
// the season data.
func (s *StandingsService) Subscribe() <-chan Update {
	return s.feed.Subscribe()
}

func (s *StandingsService) Unsubscribe(ch <-chan Update) {
	s.feed.CancelSubscription(ch)
}

// Close releases the update feed. All subscriptions are closed.
func (s *StandingsService) Close() {
	s.feed.Close()
}

// Snapshot returns the current season data.
func (s *StandingsService) Snapshot() season.Snapshot {
	return s.store.Snapshot()
}

// Standings returns driver and team standings after all completed events.
func (s *StandingsService) Standings(ctx context.Context) (*Standings, error) {
	return s.get(ctx, allEvents)
}

// StandingsAfter returns the standings as they were after the first n
// completed events.
func (s *StandingsService) StandingsAfter(ctx context.Context, n int) (*Standings, error) {
	completed := s.store.Snapshot().CompletedEvents()
	if n < 0 || n > completed {
		return nil, model.NewInvalidInput("after", n,
			fmt.Sprintf("must be between 0 and %d", completed))
	}
	return s.get(ctx, n)
}

// Trend compares the standings after the latest completed event with the
// standings before that event.
func (s *StandingsService) Trend(ctx context.Context) ([]model.Movement, error) {
	return s.TrendAfter(ctx, s.store.Snapshot().CompletedEvents())
}

// TrendAfter compares the standings after n completed events with the
// standings after n-1 completed events.
func (s *StandingsService) TrendAfter(ctx context.Context, n int) ([]model.Movement, error) {
	ctx, span := s.tracer.Start(ctx, "StandingsService.Trend",
		trace.WithAttributes(attribute.Int("after", n)))
	defer span.End()

	current, err := s.StandingsAfter(ctx, n)
	if err != nil {
		return nil, recordErr(span, err)
	}
	if n == 0 {
		return []model.Movement{}, nil
	}
	previous, err := s.StandingsAfter(ctx, n-1)
	if err != nil {
		return nil, recordErr(span, err)
	}
	return standings.Trend(previous.Drivers, current.Drivers), nil
}

// Score computes the points for a single what-if result using the rules of
// the season.
func (s *StandingsService) Score(ctx context.Context, req ScoreRequest) (int, error) {
	_, span := s.tracer.Start(ctx, "StandingsService.Score")
	defer span.End()
	if err := req.Validate(); err != nil {
		return 0, recordErr(span, err)
	}
	rules, err := s.store.Snapshot().Rules()
	if err != nil {
		return 0, recordErr(span, err)
	}
	points, err := rules.Score(req.Class, req.Position, req.Tier,
		req.StageWins, req.PowerStagePosition)
	if err != nil {
		return 0, recordErr(span, err)
	}
	span.SetAttributes(attribute.Int("points", points))
	return points, nil
}

func (s *StandingsService) StartEvent(ctx context.Context, eventID string) error {
	if err := s.store.StartEvent(eventID); err != nil {
		return err
	}
	s.changed(ctx, UpdateEventStarted, eventID)
	return nil
}

//nolint:whitespace // can't make both editor and linter happy
func (s *StandingsService) CompleteEvent(
	ctx context.Context, eventID string, results []model.ResultEntry,
) error {
	if err := s.store.CompleteEvent(eventID, results); err != nil {
		return err
	}
	s.l.Info("event completed", log.String("event", eventID))
	s.changed(ctx, UpdateEventCompleted, eventID)
	return nil
}

// Reload replaces the season, for example after the season file changed.
func (s *StandingsService) Reload(ctx context.Context, data *season.Season) error {
	if err := s.store.Replace(data); err != nil {
		return err
	}
	s.changed(ctx, UpdateReloaded, "")
	return nil
}

func (s *StandingsService) changed(ctx context.Context, kind UpdateKind, eventID string) {
	s.cache.InvalidateAll(ctx)
	s.feed.Publish(Update{Kind: kind, EventID: eventID, Version: s.store.Version()})
}

func (s *StandingsService) get(ctx context.Context, after int) (*Standings, error) {
	key := snapshotKey{version: s.store.Version(), after: after}
	ret, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ret.Version != key.version {
		// the store changed while loading, don't keep the entry under the old key
		s.cache.Invalidate(ctx, key)
	}
	return ret, nil
}

func (s *StandingsService) load(ctx context.Context, key snapshotKey) (*Standings, error) {
	ctx, span := s.tracer.Start(ctx, "StandingsService.compute",
		trace.WithAttributes(attribute.Int("after", key.after)))
	defer span.End()

	snap := s.store.Snapshot()
	data := snap.Season
	if key.after != allEvents {
		data = snap.After(key.after)
	}
	rules, err := data.Rules()
	if err != nil {
		return nil, recordErr(span, err)
	}
	opts := []standings.Option{
		standings.WithRules(rules),
		standings.WithMaxResults(s.maxResults),
	}
	start := time.Now()
	drivers, err := standings.Compute(data.Results, data.Events, opts...)
	if err != nil {
		return nil, recordErr(span, err)
	}
	teams, err := standings.ComputeTeams(data.Results, data.Events, opts...)
	if err != nil {
		return nil, recordErr(span, err)
	}
	s.computations.Add(ctx, 1)
	s.l.Debug("standings computed",
		log.Uint64("version", snap.Version),
		log.Int("after", key.after),
		log.Int("results", len(data.Results)),
		log.Duration("duration", time.Since(start)))

	span.SetAttributes(
		attribute.Int64("version", int64(snap.Version)),
		attribute.Int("drivers", len(drivers)))
	return &Standings{
		Version: snap.Version,
		After:   data.CompletedEvents(),
		Drivers: drivers,
		Teams:   teams,
	}, nil
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
