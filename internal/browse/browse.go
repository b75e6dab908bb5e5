// Package browse combines the portal client, the snapshot cache and the
// catalog filter into the library views: list, like and delete.
package browse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/educa-portal/acervo/internal/cache"
	"github.com/educa-portal/acervo/internal/catalog"
	"github.com/educa-portal/acervo/internal/portal"
)

// viewerKey scopes the viewer snapshot to one account so a shared machine
// never serves one user's role or age to another.
func viewerKey(userID string) string {
	return "viewer:" + userID
}

func contentKey(kind catalog.Kind) string {
	return "content:" + string(kind)
}

// Options configures a Service.
type Options struct {
	BooksPerPage  int
	VideosPerPage int
	SnapshotTTL   time.Duration
	// Offline serves everything from snapshots and rejects writes.
	Offline bool
}

// Result is one rendered page of the library.
type Result struct {
	Kind        catalog.Kind               `json:"kind"`
	Query       catalog.Query              `json:"query"`
	Viewer      catalog.Viewer             `json:"viewer"`
	Page        catalog.Page[catalog.Item] `json:"page"`
	Suggestions []string                   `json:"suggestions,omitempty"`
	FromCache   bool                       `json:"from_cache"`
	FetchedAt   time.Time                  `json:"fetched_at,omitzero"`
}

// Service serves library views for the logged-in viewer.
type Service struct {
	portal Portal
	store  SnapshotStore // nil when caching is disabled
	opts   Options
	log    *slog.Logger
}

// NewService creates a service. store may be nil to disable snapshots.
func NewService(p Portal, store SnapshotStore, opts Options, log *slog.Logger) *Service {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = 24 * time.Hour
	}
	return &Service{
		portal: p,
		store:  store,
		opts:   opts,
		log:    log.With("component", "browse"),
	}
}

// PageSize returns the configured page size for kind.
func (s *Service) PageSize(kind catalog.Kind) int {
	size := s.opts.BooksPerPage
	if kind == catalog.KindVideo {
		size = s.opts.VideosPerPage
	}
	if size <= 0 {
		return kind.DefaultPageSize()
	}
	return size
}

// Viewer resolves the logged-in user. When the portal is unreachable the
// last known profile of the same account is used.
func (s *Service) Viewer(ctx context.Context) (catalog.Viewer, error) {
	id, err := s.portal.UserID()
	if err != nil {
		return catalog.Viewer{}, fmt.Errorf("resolve viewer: %w", err)
	}

	if s.opts.Offline {
		v, err := s.cachedViewer(ctx, id)
		if err != nil {
			return catalog.Viewer{}, fmt.Errorf("resolve viewer: %w", err)
		}
		return v, nil
	}

	user, err := s.portal.CurrentUser(ctx)
	if err != nil {
		if s.canFallBack(err) {
			if v, cerr := s.cachedViewer(ctx, id); cerr == nil {
				s.log.Warn("portal unreachable, using cached viewer", "user", id, "error", err)
				return v, nil
			}
		}
		return catalog.Viewer{}, fmt.Errorf("resolve viewer: %w", err)
	}

	v := user.Viewer()
	s.save(ctx, viewerKey(id), v)
	return v, nil
}

// cachedViewer loads the viewer snapshot for id. A snapshot recorded for a
// different account counts as missing.
func (s *Service) cachedViewer(ctx context.Context, id string) (catalog.Viewer, error) {
	var v catalog.Viewer
	if _, err := s.load(ctx, viewerKey(id), &v); err != nil {
		return catalog.Viewer{}, err
	}
	if v.ID != id {
		return catalog.Viewer{}, fmt.Errorf("%w for user %s", ErrNoSnapshot, id)
	}
	return v, nil
}

type contentSnapshot struct {
	items     []catalog.Item
	fromCache bool
	fetchedAt time.Time
}

// content fetches the full item list, falling back to the snapshot when
// the portal is unreachable.
func (s *Service) content(ctx context.Context, kind catalog.Kind) (contentSnapshot, error) {
	var snap contentSnapshot
	if s.opts.Offline {
		entry, err := s.load(ctx, contentKey(kind), &snap.items)
		if err != nil {
			return contentSnapshot{}, fmt.Errorf("list %s: %w", kind, err)
		}
		snap.fromCache, snap.fetchedAt = true, entry.FetchedAt
		return snap, nil
	}

	items, err := s.portal.Content(ctx, kind)
	if err != nil {
		if s.canFallBack(err) {
			if entry, cerr := s.load(ctx, contentKey(kind), &snap.items); cerr == nil {
				s.log.Warn("portal unreachable, using cached snapshot",
					"kind", kind, "age", entry.Age(time.Now()).Round(time.Second), "error", err)
				snap.fromCache, snap.fetchedAt = true, entry.FetchedAt
				return snap, nil
			}
		}
		return contentSnapshot{}, fmt.Errorf("list %s: %w", kind, err)
	}

	s.save(ctx, contentKey(kind), items)
	snap.items, snap.fetchedAt = items, time.Now()
	return snap, nil
}

// List fetches kind, applies the access filter for the viewer and returns
// the requested page. Out-of-range pages are clamped.
func (s *Service) List(ctx context.Context, kind catalog.Kind, q catalog.Query, page int) (*Result, error) {
	if q.Genre != "" && q.Genre != catalog.AllGenres && !catalog.ValidGenre(kind, q.Genre) {
		return nil, fmt.Errorf("%w %q for %s, choose one of: %s",
			ErrUnknownGenre, q.Genre, kind, strings.Join(catalog.GenresFor(kind), ", "))
	}

	var (
		viewer catalog.Viewer
		snap   contentSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Viewer(gctx)
		viewer = v
		return err
	})
	g.Go(func() error {
		c, err := s.content(gctx, kind)
		snap = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flagged := 0
	for _, it := range snap.items {
		if len(it.Issues) > 0 {
			flagged++
			s.log.Debug("item has content issues", "kind", kind, "id", it.ID, "issues", errors.Join(it.Issues...))
		}
	}

	filtered := catalog.Filter(snap.items, viewer, q)
	res := &Result{
		Kind:      kind,
		Query:     q,
		Viewer:    viewer,
		Page:      catalog.Paginate(filtered, s.PageSize(kind), page),
		FromCache: snap.fromCache,
		FetchedAt: snap.fetchedAt,
	}
	if len(filtered) == 0 {
		res.Suggestions = Suggest(snap.items, viewer, q, MaxSuggestions)
	}

	s.log.Debug("listed content",
		"kind", kind, "total", len(snap.items), "visible", len(filtered),
		"flagged", flagged, "page", res.Page.Number, "pages", res.Page.PageCount,
		"from_cache", snap.fromCache)
	return res, nil
}

// Like toggles the viewer's like on a video and returns the updated item.
func (s *Service) Like(ctx context.Context, videoID string) (*catalog.Item, error) {
	if s.opts.Offline {
		return nil, ErrOffline
	}
	it, err := s.portal.LikeVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, catalog.KindVideo)
	return it, nil
}

// Delete removes an item. Only viewers that can manage content may delete.
func (s *Service) Delete(ctx context.Context, kind catalog.Kind, id string) error {
	if s.opts.Offline {
		return ErrOffline
	}
	v, err := s.Viewer(ctx)
	if err != nil {
		return err
	}
	if !v.CanManageContent() {
		return fmt.Errorf("%w: %s cannot delete %s %s", ErrNotPermitted, v.Role, kind, id)
	}
	if err := s.portal.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.invalidate(ctx, kind)
	s.log.Info("deleted content", "kind", kind, "id", id, "by", v.ID)
	return nil
}

// canFallBack reports whether err allows serving from the snapshot. Auth
// failures never do.
func (s *Service) canFallBack(err error) bool {
	return s.store != nil && errors.Is(err, portal.ErrUnavailable)
}

func (s *Service) load(ctx context.Context, key string, v any) (cache.Entry, error) {
	if s.store == nil {
		return cache.Entry{}, fmt.Errorf("%w for %s: cache disabled", ErrNoSnapshot, key)
	}
	entry, err := s.store.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return cache.Entry{}, fmt.Errorf("%w for %s", ErrNoSnapshot, key)
	}
	if err != nil {
		return cache.Entry{}, err
	}
	if err := json.Unmarshal(entry.Value, v); err != nil {
		return cache.Entry{}, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return entry, nil
}

// save stores a snapshot. Failures are logged; a broken cache must not
// break browsing.
func (s *Service) save(ctx context.Context, key string, v any) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("encode snapshot failed", "key", key, "error", err)
		return
	}
	if err := s.store.Set(ctx, key, data, s.opts.SnapshotTTL); err != nil {
		s.log.Warn("store snapshot failed", "key", key, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context, kind catalog.Kind) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, contentKey(kind)); err != nil {
		s.log.Warn("invalidate snapshot failed", "kind", kind, "error", err)
	}
}
