package routines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/metrics"
	"github.com/2beens/rutinas/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const (
	megabyte                = 1024 * 1024
	defaultTodayCacheSizeMB = 1
	defaultTodayCacheExpire = 5 * 60 // seconds
)

var ErrNoRoutineToday = errors.New("no routine for today")

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=routines_test

type serviceRepo interface {
	List(ctx context.Context, params ListParams) ([]gym.Routine, error)
	Get(ctx context.Context, id int) (*gym.Routine, error)
	Add(ctx context.Context, routine gym.RoutineSummary) (*gym.Routine, error)
	AddLink(ctx context.Context, link gym.RoutineExercise) (*gym.RoutineExercise, error)
}

// Service holds the routine operations spanning more than one repo call.
type Service struct {
	repo           serviceRepo
	zone           *dates.Zone
	cache          *freecache.Cache
	cacheExpire    int
	metricsManager *metrics.Manager
}

func NewService(repo serviceRepo, zone *dates.Zone, metricsManager *metrics.Manager) *Service {
	if zone == nil {
		zone = dates.Default()
	}
	return &Service{
		repo:           repo,
		zone:           zone,
		cache:          freecache.NewCache(defaultTodayCacheSizeMB * megabyte),
		cacheExpire:    defaultTodayCacheExpire,
		metricsManager: metricsManager,
	}
}

// WithTodayCache replaces the today's-routine cache. Non-positive values keep the defaults.
func (s *Service) WithTodayCache(sizeMB, expireSecs int) *Service {
	if sizeMB > 0 {
		s.cache = freecache.NewCache(sizeMB * megabyte)
	}
	if expireSecs > 0 {
		s.cacheExpire = expireSecs
	}
	return s
}

// Duplicate copies routine id onto fecha, links included.
// Links that cannot be cloned are skipped and reported in the log; the new routine is kept anyway.
func (s *Service) Duplicate(ctx context.Context, id int, fecha time.Time) (_ *gym.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.duplicate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routine.id", id))

	source, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Add(ctx, gym.RoutineSummary{
		Fecha:       fecha,
		Genero:      source.Genero,
		Descripcion: source.Descripcion,
	})
	if err != nil {
		return nil, fmt.Errorf("duplicate routine %d: %w", id, err)
	}
	s.InvalidateToday()

	links := append([]gym.RoutineExercise(nil), source.Ejercicios...)
	gym.SortLinks(links)

	var (
		skipErr error
		skipped int
		cloned  []gym.RoutineExercise
		seen    = make(map[int]struct{}, len(links))
	)
	for _, link := range links {
		if _, ok := seen[link.EjercicioID]; ok {
			skipped++
			skipErr = multierr.Append(skipErr, fmt.Errorf("exercise %d: %w", link.EjercicioID, ErrLinkExists))
			continue
		}
		seen[link.EjercicioID] = struct{}{}

		added, err := s.repo.AddLink(ctx, gym.RoutineExercise{
			RutinaID:     created.ID,
			EjercicioID:  link.EjercicioID,
			Series:       link.Series,
			Repeticiones: link.Repeticiones,
			Orden:        link.Orden,
		})
		if err != nil {
			skipped++
			skipErr = multierr.Append(skipErr, fmt.Errorf("exercise %d: %w", link.EjercicioID, err))
			continue
		}
		cloned = append(cloned, *added)
	}

	if skipErr != nil {
		log.Errorf("duplicate routine %d -> %d, skipped %d links: %s", id, created.ID, skipped, skipErr)
		span.SetAttributes(attribute.Int("links.skipped", skipped))
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterRoutinesDuplicated.Inc()
		s.metricsManager.CounterDuplicateSkipped.Add(float64(skipped))
	}

	log.Debugf("routine %d duplicated into %d with %d links", id, created.ID, len(links)-skipped)
	duplicated, err := s.repo.Get(ctx, created.ID)
	if err != nil {
		// the copy exists, answer with what was written
		log.Errorf("duplicate routine %d, re-read %d: %s", id, created.ID, err)
		created.Ejercicios = cloned
		return created, nil
	}
	return duplicated, nil
}

// Today returns the most recent routine dated today in the configured zone for genero.
func (s *Service) Today(ctx context.Context, genero gym.Gender) (_ *gym.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("genero", string(genero)))

	start, end := s.zone.DayRange(s.zone.Now())
	cacheKey := []byte(fmt.Sprintf("today|%s|%s", s.zone.FormatInput(start), genero))

	if cached, err := s.cache.Get(cacheKey); err == nil {
		routine := &gym.Routine{}
		if err := json.Unmarshal(cached, routine); err != nil {
			log.Errorf("unmarshal cached today's routine for %s: %s", genero, err)
		} else {
			log.Tracef("today's routine for %s found in cache", genero)
			s.countCache(true)
			return routine, nil
		}
	}
	s.countCache(false)

	found, err := s.repo.List(ctx, ListParams{
		From:   start,
		To:     end,
		Genero: genero,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoRoutineToday
	}

	routine := &found[0]
	if routineBytes, err := json.Marshal(routine); err != nil {
		log.Errorf("marshal today's routine %d: %s", routine.ID, err)
	} else if err := s.cache.Set(cacheKey, routineBytes, s.cacheExpire); err != nil {
		log.Errorf("set today's routine cache for %s: %s", genero, err)
	}

	return routine, nil
}

// InvalidateToday drops every cached "today" answer. Called after any routine or link write.
func (s *Service) InvalidateToday() {
	s.cache.Clear()
}

func (s *Service) countCache(hit bool) {
	if s.metricsManager == nil {
		return
	}
	if hit {
		s.metricsManager.CounterTodayCacheHits.Inc()
	} else {
		s.metricsManager.CounterTodayCacheMisses.Inc()
	}
}
