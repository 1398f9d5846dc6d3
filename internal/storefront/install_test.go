package storefront

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"novasphere/pkg/pubsub"
)

// These exercise the install guard directly: a result whose sequence number
// was overtaken while in flight must never land, no matter how the installs
// interleave.

func TestInstallRecommendationsDiscardsOvertakenResult(t *testing.T) {
	s := &Storefront{bus: pubsub.New(), aiTimeout: DefaultAITimeout}
	s.recSeq.Store(1)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.installRecommendations(1, []string{"stale"})
		}()
	}
	s.recSeq.Store(2)
	s.installRecommendations(2, []string{"fresh"})
	wg.Wait()

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, []string{"fresh"}, s.recommendedIDs)
}

func TestInstallSearchDiscardsOvertakenResult(t *testing.T) {
	s := &Storefront{bus: pubsub.New(), aiTimeout: DefaultAITimeout}
	s.searchSeq.Store(1)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.installSearch(1, []string{"stale"})
		}()
	}
	s.searchSeq.Store(2)
	s.installSearch(2, []string{"fresh"})
	wg.Wait()

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, []string{"fresh"}, s.searchIDs)
}
