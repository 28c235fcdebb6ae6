package testutils

import (
	"strconv"
	"time"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	scoreboarddomain "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with, for reproducing failures.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// Player picks one of the two players.
func (g *TestDataGenerator) Player() scoreboarddomain.Player {
	return scoreboarddomain.Players[g.faker.Number(0, len(scoreboarddomain.Players)-1)]
}

// Category picks a category from the given table.
func (g *TestDataGenerator) Category(categories []scoreboarddomain.Category) scoreboarddomain.Category {
	return categories[g.faker.Number(0, len(categories)-1)]
}

// GenerateUpdates creates count valid update requests across the given categories.
func (g *TestDataGenerator) GenerateUpdates(count int, categories []scoreboarddomain.Category) []scoreboardservice.UpdateScoreRequest {
	updates := make([]scoreboardservice.UpdateScoreRequest, count)
	for i := range updates {
		updates[i] = scoreboardservice.UpdateScoreRequest{
			Player:     string(g.Player()),
			CategoryID: g.Category(categories).ID,
			Score:      strconv.Itoa(g.faker.Number(0, 500)),
			Origin:     g.faker.IPv4Address(),
		}
	}
	return updates
}

// InvalidScores returns textual scores that must be rejected.
func (g *TestDataGenerator) InvalidScores() []string {
	return []string{
		"-1",
		"3.5",
		"",
		g.faker.Word(),
		strconv.Itoa(-g.faker.Number(1, 1000)),
	}
}
