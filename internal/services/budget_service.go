package services

import (
	"jelajah/internal/models/response_models"
	"jelajah/pkg/utils"
)

// TotalCost sums the user costs of every activity; unset costs count as 0.
func TotalCost(it response_models.Itinerary) float64 {
	var total float64
	for _, day := range it {
		for _, activity := range day.Activities {
			if activity.UserCost != nil {
				total += *activity.UserCost
			}
		}
	}
	return total
}

// AverageDailyCost divides by the day count, floored at 1 so an empty
// itinerary averages to its total.
func AverageDailyCost(it response_models.Itinerary) float64 {
	days := len(it)
	if days < 1 {
		days = 1
	}
	return TotalCost(it) / float64(days)
}

type BudgetServiceInterface interface {
	Summarize(it response_models.Itinerary) response_models.BudgetSummary
}

type BudgetService struct {
	formatter *utils.AmountFormatter
}

func NewBudgetService(formatter *utils.AmountFormatter) BudgetServiceInterface {
	return &BudgetService{formatter: formatter}
}

func (b *BudgetService) Summarize(it response_models.Itinerary) response_models.BudgetSummary {
	total := TotalCost(it)
	average := AverageDailyCost(it)
	return response_models.BudgetSummary{
		TotalCost:        total,
		AverageDailyCost: average,
		Days:             len(it),
		TotalDisplay:     b.formatter.Format(total),
		AverageDisplay:   b.formatter.FormatWhole(average),
	}
}
