package engine

import (
	"testing"

	"github.com/vovakirdan/runner-arcade/internal/core"
)

func entity(id uint64, kind Kind, x, y float64) Entity {
	return Entity{ID: id, Kind: kind, Box: core.NewBox(x, y, 20, 20)}
}

func TestCheckCollisions(t *testing.T) {
	player := core.NewBox(50, 540, 40, 60)

	tests := []struct {
		name          string
		obstacles     []Entity
		collectibles  []Entity
		hit           bool
		obstacleIndex int
		collected     []int
	}{
		{
			name:          "nothing nearby",
			obstacles:     []Entity{entity(1, KindObstacle, 300, 570)},
			collectibles:  []Entity{entity(2, KindCollectible, 400, 585)},
			obstacleIndex: -1,
		},
		{
			name:          "touching edge is not a hit",
			obstacles:     []Entity{entity(1, KindObstacle, 90, 570)},
			obstacleIndex: -1,
		},
		{
			name:          "first overlapping obstacle reported",
			obstacles:     []Entity{entity(1, KindObstacle, 300, 570), entity(2, KindObstacle, 80, 570), entity(3, KindObstacle, 60, 570)},
			hit:           true,
			obstacleIndex: 1,
		},
		{
			name:          "every overlapping collectible reported",
			collectibles:  []Entity{entity(1, KindCollectible, 40, 585), entity(2, KindCollectible, 200, 585), entity(3, KindCollectible, 70, 585)},
			obstacleIndex: -1,
			collected:     []int{0, 2},
		},
		{
			name:          "collectible above the player is missed",
			collectibles:  []Entity{entity(1, KindCollectible, 60, 500)},
			obstacleIndex: -1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := CheckCollisions(player, tc.obstacles, tc.collectibles)
			if res.ObstacleHit != tc.hit {
				t.Errorf("ObstacleHit = %v, expected %v", res.ObstacleHit, tc.hit)
			}
			if res.ObstacleIndex != tc.obstacleIndex {
				t.Errorf("ObstacleIndex = %d, expected %d", res.ObstacleIndex, tc.obstacleIndex)
			}
			if len(res.Collected) != len(tc.collected) {
				t.Fatalf("Collected = %v, expected %v", res.Collected, tc.collected)
			}
			for i := range tc.collected {
				if res.Collected[i] != tc.collected[i] {
					t.Errorf("Collected = %v, expected %v", res.Collected, tc.collected)
				}
			}
		})
	}
}
