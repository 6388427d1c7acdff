package resource

import (
	"context"
	"time"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/pagination"
	"github.com/Domenick1991/flightdesk/internal/patch"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UseCase[T any] interface {
	List(ctx context.Context, page, pageSize int, c repository.Criteria) (*domain.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Replace(ctx context.Context, id int64, entity *T) error
	Patch(ctx context.Context, id int64, doc patch.Document) (*T, error)
	Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type Service[T any] struct {
	repo        repository.Repository[T]
	name        string
	idOf        func(*T) *int64
	maxPageSize int

	producer Producer
	topic    string
	log      *zap.Logger

	// prepare runs before every write. current is nil on create.
	prepare func(current, next *T) error
	redact  func(*T)
}

type Option[T any] func(*Service[T])

func WithEvents[T any](producer Producer, topic string) Option[T] {
	return func(s *Service[T]) {
		s.producer = producer
		s.topic = topic
	}
}

func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(s *Service[T]) {
		s.log = log
	}
}

func WithPrepare[T any](fn func(current, next *T) error) Option[T] {
	return func(s *Service[T]) {
		s.prepare = fn
	}
}

// WithRedact strips fields that must never leave the service.
func WithRedact[T any](fn func(*T)) Option[T] {
	return func(s *Service[T]) {
		s.redact = fn
	}
}

func NewService[T any](repo repository.Repository[T], desc repository.Descriptor[T], maxPageSize int, opts ...Option[T]) *Service[T] {
	s := &Service[T]{
		repo:        repo,
		name:        desc.Name,
		idOf:        desc.ID,
		maxPageSize: maxPageSize,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[T]) List(ctx context.Context, page, pageSize int, c repository.Criteria) (*domain.Page[T], error) {
	req, err := pagination.Validate(page, pageSize, s.maxPageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, c)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, c, req.PageSize, req.Offset())
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.clean(&items[i])
	}
	return domain.NewPage(items, req.Page, req.PageSize, total), nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.clean(entity)
	return entity, nil
}

func (s *Service[T]) Create(ctx context.Context, entity *T) (*T, error) {
	*s.idOf(entity) = 0
	if s.prepare != nil {
		if err := s.prepare(nil, entity); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.ResourceCreated, *s.idOf(entity))
	s.clean(entity)
	return entity, nil
}

// Replace overwrites the stored entity. The body id must equal the route id;
// the mismatch is reported before the store is touched.
func (s *Service[T]) Replace(ctx context.Context, id int64, entity *T) error {
	if bodyID := *s.idOf(entity); bodyID != id {
		return apperr.BadArgument("%s id in body (%d) does not match id in path (%d)", s.name, bodyID, id)
	}

	if s.prepare != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.prepare(current, entity); err != nil {
			return err
		}
	} else {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.ErrNotFound
		}
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return err
	}
	s.publish(ctx, kafka.ResourceReplaced, id)
	return nil
}

func (s *Service[T]) Patch(ctx context.Context, id int64, doc patch.Document) (*T, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	if err := patch.Apply(&next, doc); err != nil {
		return nil, err
	}
	if patchedID := *s.idOf(&next); patchedID != id {
		return nil, apperr.BadArgument("%s id cannot be changed by a patch", s.name)
	}
	if s.prepare != nil {
		if err := s.prepare(current, &next); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.ResourcePatched, id)
	s.clean(&next)
	return &next, nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error) {
	outcome, err := s.repo.Delete(ctx, id)
	if err != nil {
		return outcome, err
	}
	if outcome == domain.Deleted {
		s.publish(ctx, kafka.ResourceDeleted, id)
	}
	return outcome, nil
}

func (s *Service[T]) clean(entity *T) {
	if s.redact != nil && entity != nil {
		s.redact(entity)
	}
}

// publish never fails the mutation; a lost event is only logged.
func (s *Service[T]) publish(ctx context.Context, eventType string, id int64) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.ResourceEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Resource:   s.name,
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	}
	if p, ok := auth.PrincipalFrom(ctx); ok {
		event.Actor = p.UserName
	}
	if err := s.producer.Publish(ctx, s.topic, event.Key(), event); err != nil {
		s.log.Warn("failed to publish resource event",
			zap.String("type", eventType),
			zap.String("resource", s.name),
			zap.Int64("id", id),
			zap.Error(err))
	}
}

var _ UseCase[domain.Airline] = (*Service[domain.Airline])(nil)
