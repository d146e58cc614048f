package season

import (
	"sync"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/pkg/model"
)

// Snapshot is an immutable copy of a season. Version increases with every
// change of the store.
type Snapshot struct {
	*Season
	Version uint64
}

// Store guards a season against concurrent result ingestion. Readers get
// consistent copies via Snapshot.
type Store struct {
	mu      sync.RWMutex
	season  *Season
	version uint64
	l       *log.Logger
}

type StoreOption func(s *Store)

func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		s.l = l
	}
}

// NewStore validates s and takes ownership of a copy.
func NewStore(s *Season, opts ...StoreOption) (*Store, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ret := &Store{
		season:  s.Clone(),
		version: 1,
		l:       log.Default().Named("season"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Season: s.season.Clone(), Version: s.version}
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) StartEvent(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.season.Start(eventID); err != nil {
		s.l.Warn("could not start event", log.String("event", eventID), log.ErrorField(err))
		return err
	}
	s.version++
	s.l.Debug("event started",
		log.String("event", eventID), log.Uint64("version", s.version))
	return nil
}

func (s *Store) CompleteEvent(eventID string, results []model.ResultEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// work on a copy, the stored season stays untouched on error
	work := s.season.Clone()
	if err := work.Complete(eventID, results); err != nil {
		s.l.Warn("could not complete event", log.String("event", eventID), log.ErrorField(err))
		return err
	}
	s.season = work
	s.version++
	s.l.Debug("event completed",
		log.String("event", eventID),
		log.Int("results", len(results)),
		log.Uint64("version", s.version))
	return nil
}

// Replace swaps the whole season, for example after the season file changed.
func (s *Store) Replace(season *Season) error {
	if err := season.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.season = season.Clone()
	s.version++
	s.l.Info("season replaced",
		log.String("name", season.Name), log.Uint64("version", s.version))
	return nil
}
