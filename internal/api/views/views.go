package views

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"jelajah/internal/models/response_models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PlannerPage is everything the planner page needs.
type PlannerPage struct {
	View       response_models.PlannerView
	FormError  string
	MaxDays    int
	DefaultDur int
}

// Renderer holds the parsed page templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"priceLookupURL": PriceLookupURL,
		"userCost":       userCostValue,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) RenderPlanner(w io.Writer, page PlannerPage) error {
	return r.tmpl.ExecuteTemplate(w, "planner.html", page)
}

// PriceLookupURL points at a web search for the activity's ticket price.
func PriceLookupURL(activityName string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(activityName+" ticket price")
}

func userCostValue(a response_models.Activity) string {
	if a.UserCost == nil {
		return ""
	}
	return strconv.FormatFloat(*a.UserCost, 'f', -1, 64)
}
