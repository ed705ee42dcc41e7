// Package catalog caches the product list fetched from the backend and serves
// catalog views and product details from it.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	domcatalog "example.com/storefront/internal/domain/catalog"
	domproduct "example.com/storefront/internal/domain/product"
)

type Source interface {
	FetchAllProducts(ctx context.Context) ([]domproduct.Product, error)
	FetchProductsByCategory(ctx context.Context, category string) ([]domproduct.Product, error)
	FetchProductByID(ctx context.Context, id string) (domproduct.Product, error)
}

const (
	loadKey     = "products"
	loadTimeout = 10 * time.Second
)

type Store struct {
	source Source
	group  singleflight.Group
	now    func() time.Time

	mu       sync.RWMutex
	products []domproduct.Product
	loaded   bool

	detailMu  sync.Mutex
	detailSeq uint64
	details   map[string]*detailState
}

// detailState tracks the latest detail request of one session. Only the
// request holding the current seq may commit its result. Seqs come from a
// store-wide counter so a session's entry can be dropped and recreated
// without reviving an older request.
type detailState struct {
	seq      uint64
	cancel   context.CancelFunc
	viewing  *domproduct.Product
	lastSeen time.Time
}

func NewStore(source Source) *Store {
	return &Store{
		source:  source,
		now:     time.Now,
		details: make(map[string]*detailState),
	}
}

// Products returns the cached list, fetching it on first use. A failed fetch
// is reported to the caller; the next call fetches again.
func (s *Store) Products(ctx context.Context) ([]domproduct.Product, error) {
	s.mu.RLock()
	products, loaded := s.products, s.loaded
	s.mu.RUnlock()
	if loaded {
		return products, nil
	}
	return s.load(ctx)
}

func (s *Store) Refresh(ctx context.Context) ([]domproduct.Product, error) {
	return s.load(ctx)
}

func (s *Store) View(ctx context.Context, q domcatalog.Query) (domcatalog.View, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return domcatalog.View{}, err
	}
	return domcatalog.Build(products, q), nil
}

// load shares one backend fetch between concurrent callers. The fetch is
// detached from the caller that started it, so a caller giving up only
// abandons its own wait.
func (s *Store) load(ctx context.Context) ([]domproduct.Product, error) {
	const op = "catalog.Store.load"

	ch := s.group.DoChan(loadKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		fetched, err := s.source.FetchAllProducts(fetchCtx)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			fetched = []domproduct.Product{}
		}
		s.mu.Lock()
		s.products = fetched
		s.loaded = true
		s.mu.Unlock()
		return fetched, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, res.Err)
		}
		return res.Val.([]domproduct.Product), nil
	}
}

// ByCategory asks the backend for one category, bypassing the cached list.
func (s *Store) ByCategory(ctx context.Context, category string) ([]domproduct.Product, error) {
	const op = "catalog.Store.ByCategory"

	products, err := s.source.FetchProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if products == nil {
		products = []domproduct.Product{}
	}
	return products, nil
}

// Detail fetches one product for a session. Starting a new detail request
// cancels the session's in-flight one; a request that is no longer the
// latest returns ErrSuperseded and never replaces the viewed product.
func (s *Store) Detail(ctx context.Context, sessionID, id string) (domproduct.Product, error) {
	if err := domproduct.ValidateID(id); err != nil {
		return domproduct.Product{}, err
	}

	ctx, seq := s.beginDetail(ctx, sessionID)
	p, err := s.source.FetchProductByID(ctx, id)
	if !s.commitDetail(sessionID, seq, p, err) {
		return domproduct.Product{}, domcatalog.ErrSuperseded
	}
	if err != nil {
		return domproduct.Product{}, err
	}
	return p, nil
}

// Viewing returns the last product committed by Detail for the session.
func (s *Store) Viewing(sessionID string) (domproduct.Product, bool) {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	st, ok := s.details[sessionID]
	if !ok || st.viewing == nil {
		return domproduct.Product{}, false
	}
	st.lastSeen = s.now()
	return *st.viewing, true
}

// Forget drops the detail state of a session, cancelling any pending fetch.
func (s *Store) Forget(sessionID string) {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	if st, ok := s.details[sessionID]; ok && st.cancel != nil {
		st.cancel()
	}
	delete(s.details, sessionID)
}

func (s *Store) beginDetail(ctx context.Context, sessionID string) (context.Context, uint64) {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	st, ok := s.details[sessionID]
	if !ok {
		st = &detailState{}
		s.details[sessionID] = st
	}
	if st.cancel != nil {
		st.cancel()
	}
	s.detailSeq++
	st.seq = s.detailSeq
	st.lastSeen = s.now()
	ctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	return ctx, st.seq
}

func (s *Store) commitDetail(sessionID string, seq uint64, p domproduct.Product, err error) bool {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	st, ok := s.details[sessionID]
	if !ok || st.seq != seq {
		return false
	}
	st.cancel()
	st.cancel = nil
	st.lastSeen = s.now()
	if err == nil {
		st.viewing = &p
	}
	if st.viewing == nil {
		delete(s.details, sessionID)
	}
	return true
}

// Sweep drops the detail state of sessions idle since before cutoff and
// reports how many were dropped. Sessions with a fetch in flight are kept.
func (s *Store) Sweep(cutoff time.Time) int {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	n := 0
	for id, st := range s.details {
		if st.cancel == nil && st.lastSeen.Before(cutoff) {
			delete(s.details, id)
			n++
		}
	}
	return n
}

