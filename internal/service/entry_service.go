package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/Yunxiang777/accounts/internal/domain"
	"github.com/Yunxiang777/accounts/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/Yunxiang777/accounts/internal/cache"
)

var (
	ErrNotFound     = errors.New("entry not found")
	ErrMissingField = errors.New("description, amount, date and sign are required")
	ErrInvalidSign  = errors.New(`sign must be "credit" or "debit"`)
)

// EntryService validates and persists ledger entries. The list read
// path goes through the Redis cache, collapsed with singleflight so
// concurrent cold reads hit Postgres once.
type EntryService struct {
	repo  repo.EntryRepo
	cache *cache.EntryCache
	sf    singleflight.Group
}

// NewEntryService creates an EntryService. If c is nil, caching is disabled.
func NewEntryService(r repo.EntryRepo, c *cache.EntryCache) *EntryService {
	return &EntryService{repo: r, cache: c}
}

// Create validates the input and persists a new entry. Description must
// be non-empty after trimming; amount, date and sign must all be
// present, and sign must be one of the two recognized values.
func (s *EntryService) Create(ctx context.Context, description string, amount *int64, date *time.Time, sign string) (dom.Entry, error) {
	description = strings.TrimSpace(description)
	if description == "" || amount == nil || date == nil {
		return dom.Entry{}, ErrMissingField
	}
	if sign == "" {
		return dom.Entry{}, ErrMissingField
	}
	sg := dom.Sign(sign)
	if !sg.Valid() {
		return dom.Entry{}, ErrInvalidSign
	}

	e, err := s.repo.Create(ctx, dom.Entry{
		Description: description,
		Amount:      *amount,
		Date:        *date,
		Sign:        sg,
	})
	if err != nil {
		return dom.Entry{}, err
	}
	s.invalidateCache(ctx)
	return e, nil
}

// List returns all entries in display order (date descending).
func (s *EntryService) List(ctx context.Context) ([]dom.Entry, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Entry), nil
	}
	return s.repo.List(ctx)
}

func (s *EntryService) GetByID(ctx context.Context, id int64) (dom.Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Entry{}, ErrNotFound
		}
		return dom.Entry{}, err
	}
	return e, nil
}

// Update applies a sparse patch: nil fields are left unchanged, present
// fields pass the same rules as Create before the merged record is
// written back.
func (s *EntryService) Update(ctx context.Context, id int64, description *string, amount *int64, date *time.Time, sign *string) (dom.Entry, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Entry{}, ErrNotFound
		}
		return dom.Entry{}, err
	}
	patch := existing
	if description != nil {
		d := strings.TrimSpace(*description)
		if d == "" {
			return dom.Entry{}, ErrMissingField
		}
		patch.Description = d
	}
	if amount != nil {
		patch.Amount = *amount
	}
	if date != nil {
		patch.Date = *date
	}
	if sign != nil {
		sg := dom.Sign(*sign)
		if !sg.Valid() {
			return dom.Entry{}, ErrInvalidSign
		}
		patch.Sign = sg
	}
	e, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Entry{}, ErrNotFound
		}
		return dom.Entry{}, err
	}
	s.invalidateCache(ctx)
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *EntryService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
