// Package results keeps recent answers in memory so they can be exported or charted later.
package results

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// Store holds answers by result id until they expire.
type Store struct {
	cache *cache.Cache
}

// NewStore keeps answers for ttl and purges expired ones every ttl/2.
func NewStore(ttl time.Duration) *Store {
	return &Store{cache: cache.New(ttl, ttl/2)}
}

// Put stores an answer under its ResultID.
func (s *Store) Put(answer *models.Answer) {
	s.cache.Set(answer.ResultID.String(), answer, cache.DefaultExpiration)
}

// Get returns the answer for id, or apperrors.ErrNotFound once it has expired.
func (s *Store) Get(id uuid.UUID) (*models.Answer, error) {
	if x, found := s.cache.Get(id.String()); found {
		return x.(*models.Answer), nil
	}
	return nil, apperrors.ErrNotFound
}

// Len returns the number of unexpired answers.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
