package audit

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Service coordinates audit timeline reads with the cache layer.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService builds an audit timeline service. Cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Timeline fetches audit events with paging. One extra row is requested to
// detect whether a next page exists. Results are cached per filter set until
// the next event is persisted.
func (s *Service) Timeline(ctx context.Context, filters TimelineFilters) (Result, error) {
	if s.repo == nil {
		return Result{}, fmt.Errorf("audit: repository not configured")
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 50 {
		pageSize = 50
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	key, err := s.cache.BuildKey(ctx, cacheKeyParts(filters, page, pageSize)...)
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = s.cache.FetchJSON(ctx, key, &result, func(ctx context.Context) (any, error) {
		rows, err := s.repo.Timeline(ctx, filters, pageSize+1, offset)
		if err != nil {
			return nil, err
		}
		hasNext := len(rows) > pageSize
		if hasNext {
			rows = rows[:pageSize]
		}
		paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
		if page > 1 {
			paging.PrevPage = page - 1
		}
		if hasNext {
			paging.NextPage = page + 1
		}
		return Result{Rows: rows, Paging: paging}, nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func cacheKeyParts(filters TimelineFilters, page, pageSize int) []string {
	return []string{
		"audit", "timeline",
		timeToken(filters.From),
		timeToken(filters.To),
		orDash(filters.Type),
		orDash(filters.AuthorType),
		orDash(filters.RefName),
		strconv.FormatInt(filters.RefID, 10),
		strconv.Itoa(page),
		strconv.Itoa(pageSize),
	}
}

func timeToken(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return strconv.FormatInt(t.Unix(), 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
