package engine

import (
	"time"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/core"
)

// Kind distinguishes the two scrolling entity types.
type Kind int

const (
	KindObstacle Kind = iota
	KindCollectible
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// Entity is a scrolling obstacle or collectible.
type Entity struct {
	ID   uint64
	Kind Kind
	core.Box
}

// SpawnReport describes what a call to Spawn did.
type SpawnReport struct {
	Obstacle    bool // An obstacle was added
	Collectible bool // A collectible was added
	Rejected    bool // A collectible was due but overlapped an obstacle and was dropped
}

// SpawnManager handles spawning, movement, and removal of obstacles and collectibles.
type SpawnManager struct {
	obstacles    []Entity
	collectibles []Entity

	obstacleCfg    config.ObstacleConfig
	collectibleCfg config.CollectibleConfig
	field          Playfield

	obstacleCooldown    time.Duration
	collectibleCooldown time.Duration
	lastObstacle        time.Duration
	lastCollectible     time.Duration

	nextID   uint64
	rejected int
}

// NewSpawnManager creates a spawn manager for the given playfield.
func NewSpawnManager(oc config.ObstacleConfig, cc config.CollectibleConfig, field Playfield) *SpawnManager {
	return &SpawnManager{
		obstacles:           make([]Entity, 0, 8),
		collectibles:        make([]Entity, 0, 32),
		obstacleCfg:         oc,
		collectibleCfg:      cc,
		field:               field,
		obstacleCooldown:    time.Duration(oc.CooldownMS) * time.Millisecond,
		collectibleCooldown: time.Duration(cc.CooldownMS) * time.Millisecond,
	}
}

// Reset clears all entities and restarts both cooldowns at now.
func (s *SpawnManager) Reset(now time.Duration) {
	s.obstacles = s.obstacles[:0]
	s.collectibles = s.collectibles[:0]
	s.lastObstacle = now
	s.lastCollectible = now
	s.rejected = 0
}

// Spawn creates every entity whose cooldown has elapsed.
func (s *SpawnManager) Spawn(now time.Duration) SpawnReport {
	var report SpawnReport

	if now-s.lastObstacle > s.obstacleCooldown {
		s.obstacles = append(s.obstacles, s.newEntity(KindObstacle))
		s.lastObstacle = now
		report.Obstacle = true
	}

	if now-s.lastCollectible > s.collectibleCooldown {
		candidate := s.newEntity(KindCollectible)
		if s.collectibleCfg.AvoidOverlap && s.overlapsObstacle(candidate.Box) {
			s.rejected++
			report.Rejected = true
		} else {
			s.collectibles = append(s.collectibles, candidate)
			report.Collectible = true
		}
		// A rejected candidate is dropped, not retried next frame
		s.lastCollectible = now
	}

	return report
}

// newEntity builds an entity at the right edge of the playfield.
func (s *SpawnManager) newEntity(kind Kind) Entity {
	s.nextID++
	e := Entity{ID: s.nextID, Kind: kind}
	switch kind {
	case KindObstacle:
		e.Box = core.NewBox(s.field.Width, s.field.Floor()-s.obstacleCfg.FloorOffset,
			s.obstacleCfg.Width, s.obstacleCfg.Height)
	case KindCollectible:
		e.Box = core.NewBox(s.field.Width, s.field.Floor()-s.collectibleCfg.FloorOffset,
			s.collectibleCfg.Width, s.collectibleCfg.Height)
	}
	return e
}

// overlapsObstacle reports whether b overlaps any live obstacle.
func (s *SpawnManager) overlapsObstacle(b core.Box) bool {
	for _, o := range s.obstacles {
		if b.Intersects(o.Box) {
			return true
		}
	}
	return false
}

// Advance moves every entity left by speed and culls those whose
// trailing edge has passed x=0.
func (s *SpawnManager) Advance(speed float64) {
	s.obstacles = scroll(s.obstacles, speed)
	s.collectibles = scroll(s.collectibles, speed)
}

// scroll moves and filters in place; each entity is visited exactly once.
func scroll(entities []Entity, speed float64) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		e.X -= speed
		if e.Right() >= 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

// RemoveCollectibles drops the collectibles at the given indices.
// Indices must refer to the current Collectibles() slice.
func (s *SpawnManager) RemoveCollectibles(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		drop[i] = struct{}{}
	}

	kept := s.collectibles[:0]
	for i, c := range s.collectibles {
		if _, ok := drop[i]; !ok {
			kept = append(kept, c)
		}
	}
	s.collectibles = kept
}

// Obstacles returns the live obstacles in spawn order.
func (s *SpawnManager) Obstacles() []Entity {
	return s.obstacles
}

// Collectibles returns the live collectibles in spawn order.
func (s *SpawnManager) Collectibles() []Entity {
	return s.collectibles
}

// Rejected returns how many collectible candidates were dropped this session.
func (s *SpawnManager) Rejected() int {
	return s.rejected
}
