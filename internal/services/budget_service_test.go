package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jelajah/internal/models/response_models"
	"jelajah/pkg/utils"
)

func TestTotalCost_IgnoresUnsetCosts(t *testing.T) {
	it := sampleItinerary()
	assert.Equal(t, 0.0, TotalCost(it))
	assert.Equal(t, 0.0, AverageDailyCost(it))

	it = WithUserCost(it, 0, 0, 100)
	it = WithUserCost(it, 1, 0, 50.5)
	assert.Equal(t, 150.5, TotalCost(it))
	assert.Equal(t, 75.25, AverageDailyCost(it))
}

func TestAverageDailyCost_EmptyItinerary(t *testing.T) {
	var it response_models.Itinerary
	assert.Equal(t, TotalCost(it), AverageDailyCost(it))
	assert.Equal(t, 0.0, AverageDailyCost(it))
}

func TestBudgetService_Summarize(t *testing.T) {
	svc := NewBudgetService(utils.NewAmountFormatter("id"))

	it := WithUserCost(sampleItinerary(), 0, 1, 1500000)
	it = WithUserCost(it, 1, 0, 2)

	got := svc.Summarize(it)
	assert.Equal(t, response_models.BudgetSummary{
		TotalCost:        1500002,
		AverageDailyCost: 750001,
		Days:             2,
		TotalDisplay:     "1.500.002",
		AverageDisplay:   "750.001",
	}, got)
}
