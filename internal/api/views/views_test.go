package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jelajah/internal/models/response_models"
)

func TestPriceLookupURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/search?q=Kinkaku-ji+ticket+price", PriceLookupURL("Kinkaku-ji"))
	assert.Equal(t, "https://www.google.com/search?q=A%26B+ticket+price", PriceLookupURL("A&B"))
}

func render(t *testing.T, page PlannerPage) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPlanner(&buf, page))
	return buf.String()
}

func TestRenderPlanner_EmptyForm(t *testing.T) {
	html := render(t, PlannerPage{MaxDays: 30, DefaultDur: 3})

	assert.Contains(t, html, `action="/plan"`)
	assert.Contains(t, html, "Plan my trip")
	assert.NotContains(t, html, "http-equiv=\"refresh\"")
	assert.NotContains(t, html, "Total budget")
	assert.NotContains(t, html, "disabled")
}

func TestRenderPlanner_Loading(t *testing.T) {
	html := render(t, PlannerPage{View: response_models.PlannerView{
		Loading: true,
		Request: &response_models.TravelEcho{Destination: "Kyoto", Duration: 2, Interests: "food"},
	}})

	assert.Contains(t, html, `http-equiv="refresh"`)
	assert.Contains(t, html, "disabled")
	assert.Contains(t, html, "Planning your trip to Kyoto")
	assert.Contains(t, html, `action="/reset"`, "a stuck generation can be cancelled")
}

func TestRenderPlanner_Error(t *testing.T) {
	html := render(t, PlannerPage{View: response_models.PlannerView{Error: "We couldn't build your itinerary. Please try again."}})

	assert.Contains(t, html, "We couldn&#39;t build your itinerary. Please try again.")
	assert.Contains(t, html, `action="/dismiss"`)
}

func TestRenderPlanner_Itinerary(t *testing.T) {
	cost := 150.0
	html := render(t, PlannerPage{View: response_models.PlannerView{
		Itinerary: response_models.Itinerary{
			{Day: 1, Theme: "Temples", Activities: []response_models.Activity{
				{Name: "Fushimi Inari", Hours: "24h", Cost: "Free", Description: "Torii gates", UserCost: &cost},
			}},
			{Day: 2, Theme: "Rest", Activities: []response_models.Activity{}},
		},
		Budget:  &response_models.BudgetSummary{TotalDisplay: "150", AverageDisplay: "75"},
		Sources: []string{"https://kyoto.travel/en"},
	}})

	assert.Contains(t, html, "Day 1: Temples")
	assert.Contains(t, html, "Fushimi Inari")
	assert.Contains(t, html, "Torii gates")
	assert.Contains(t, html, "https://www.google.com/search?q=Fushimi+Inari+ticket+price")
	assert.Contains(t, html, `value="150"`)
	assert.Contains(t, html, "No activities planned.")
	assert.Contains(t, html, "https://kyoto.travel/en")
	assert.Contains(t, html, `action="/reset"`)
	assert.Contains(t, html, "Total budget")
}

func TestRenderPlanner_EmptyItineraryStillShowsBudget(t *testing.T) {
	html := render(t, PlannerPage{View: response_models.PlannerView{
		Itinerary: response_models.Itinerary{},
		Budget:    &response_models.BudgetSummary{TotalDisplay: "0", AverageDisplay: "0"},
	}})

	assert.Contains(t, html, "Total budget")
	assert.Contains(t, html, `action="/reset"`)
}
