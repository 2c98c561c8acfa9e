package engine

import "github.com/vovakirdan/runner-arcade/internal/core"

// CollisionResult is the outcome of one collision pass.
type CollisionResult struct {
	ObstacleHit   bool  // The player overlaps at least one obstacle
	ObstacleIndex int   // Index of the first overlapping obstacle, -1 if none
	Collected     []int // Indices of every overlapping collectible, ascending
}

// CheckCollisions tests the player against every obstacle and collectible.
// It only reads the slices; the caller applies the result.
func CheckCollisions(player core.Box, obstacles, collectibles []Entity) CollisionResult {
	res := CollisionResult{ObstacleIndex: -1}

	for i, o := range obstacles {
		if player.Intersects(o.Box) {
			res.ObstacleHit = true
			res.ObstacleIndex = i
			break // every hit ends the game the same way
		}
	}

	for i, c := range collectibles {
		if player.Intersects(c.Box) {
			res.Collected = append(res.Collected, i)
		}
	}

	return res
}
