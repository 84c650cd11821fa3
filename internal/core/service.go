package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/runsheet/internal/config"
	"github.com/JonMunkholm/runsheet/internal/logging"
	"github.com/JonMunkholm/runsheet/internal/store"
	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// DefaultMaxImportBytes caps a roster CSV when Options leaves it unset.
const DefaultMaxImportBytes = 5 << 20

// Options configures a Service. Zero values select the defaults.
type Options struct {
	// Strict makes mutators return ErrUnknownDay, ErrUnknownAct or
	// ErrSlotOutOfRange instead of silently keeping the project unchanged.
	Strict   bool
	Defaults Defaults

	MaxImportBytes       int64
	MaxConcurrentImports int
	ImportWait           time.Duration

	NewID func() string    // id generator for projects and acts
	Now   func() time.Time // clock for createdAt
}

// OptionsFromConfig maps the loaded configuration onto service options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Strict: cfg.Schedule.Strict,
		Defaults: Defaults{
			SlotMin:         cfg.Schedule.DefaultSlotMin,
			Start:           cfg.Schedule.DefaultStart,
			IntermissionMin: cfg.Schedule.IntermissionMin,
		},
		MaxImportBytes:       cfg.Import.MaxFileSize,
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWaitTime,
	}
}

// Service is the facade every host shell talks to. It loads projects from
// the store, threads them through the timetable engine and writes the result
// back, one writer per project at a time.
type Service struct {
	store   store.ProjectStore
	opts    Options
	limiter *ImportLimiter

	mu       sync.Mutex
	sessions map[string]*session
}

// session serializes read-modify-write cycles on one project. refs counts
// holders and waiters; the entry is dropped when it reaches zero.
type session struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a Service backed by st.
func NewService(st store.ProjectStore, opts Options) *Service {
	if opts.MaxImportBytes <= 0 {
		opts.MaxImportBytes = DefaultMaxImportBytes
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		store:    st,
		opts:     opts,
		limiter:  NewImportLimiter(opts.MaxConcurrentImports, opts.ImportWait),
		sessions: make(map[string]*session),
	}
}

// Limiter exposes the import limiter for shutdown draining and status.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// Strict reports whether mutators return errors for unknown targets.
func (s *Service) Strict() bool {
	return s.opts.Strict
}

// lock acquires the session for id and returns its unlock function.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.refs++
	s.mu.Unlock()

	sess.mu.Lock()
	return func() {
		sess.mu.Unlock()

		s.mu.Lock()
		sess.refs--
		if sess.refs == 0 {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
	}
}

// load reads a project and normalizes its schedule. Callers that write the
// result back must hold the session lock.
func (s *Service) load(ctx context.Context, id string) (timetable.Project, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return timetable.Project{}, fmt.Errorf("load project %s: %w", id, err)
	}
	return timetable.EnsureSchedule(p), nil
}

func (s *Service) logger(ctx context.Context, id, op string) *slog.Logger {
	log := logging.WithFields(ctx, "project_id", id, "op", op)
	if ip := GetIPAddressFromContext(ctx); ip != "" {
		log = log.With("client_ip", ip)
	}
	if ua := GetUserAgentFromContext(ctx); ua != "" {
		log = log.With("user_agent", ua)
	}
	return log
}

// CreateProject builds a project from req, stores it under a new id and
// returns both.
func (s *Service) CreateProject(ctx context.Context, req NewProjectRequest) (string, timetable.Project, error) {
	p := NewProject(req, s.opts.Defaults, s.opts.Now())
	if err := validationFailure(ValidateProject(p)); err != nil {
		return "", timetable.Project{}, err
	}

	id := s.opts.NewID()
	if err := s.store.Create(ctx, id, p); err != nil {
		return "", timetable.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.logger(ctx, id, "create").Info("project created",
		"title", p.Meta.Title,
		"days", len(p.Days),
	)
	return id, p, nil
}

// Project returns the current state of a project.
func (s *Service) Project(ctx context.Context, id string) (timetable.Project, error) {
	return s.load(ctx, id)
}

// ListProjects returns summaries of all stored projects.
func (s *Service) ListProjects(ctx context.Context) ([]store.Summary, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return list, nil
}

// ReplaceProject overwrites a project with a document supplied by the
// caller, for example a file saved by another copy of the tool.
func (s *Service) ReplaceProject(ctx context.Context, id string, p timetable.Project) (timetable.Project, error) {
	if err := validationFailure(ValidateProject(p)); err != nil {
		return timetable.Project{}, err
	}
	p.SchemaVersion = timetable.SchemaVersion
	if p.Acts == nil {
		p.Acts = []timetable.Act{}
	}
	p = timetable.EnsureSchedule(p)

	unlock := s.lock(id)
	defer unlock()

	if err := s.store.Put(ctx, id, p); err != nil {
		return timetable.Project{}, fmt.Errorf("replace project %s: %w", id, err)
	}

	s.logger(ctx, id, "replace").Info("project replaced", "acts", len(p.Acts))
	return p, nil
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	unlock := s.lock(id)
	err := s.store.Delete(ctx, id)
	unlock()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	s.logger(ctx, id, "delete").Info("project deleted")
	return nil
}

// IsNotFound reports whether err means the project does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound)
}
