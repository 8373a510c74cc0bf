package notionsync

import (
	"github.com/jomei/notionapi"

	"github.com/adityamisra/sip-planner/internal/analysis"
)

// MonthTrendToNotionProperties converts one monthly trend entry to the
// properties of the Monthly Trend Notion database. The Month title (YYYY-MM)
// is the sync key.
func MonthTrendToNotionProperties(t analysis.MonthTrend) notionapi.Properties {
	return notionapi.Properties{
		"Month": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: t.Month,
					},
				},
			},
		},
		"Income": notionapi.NumberProperty{
			Number: float64(t.Income),
		},
		"Expenses": notionapi.NumberProperty{
			Number: float64(t.Expenses),
		},
		"Surplus": notionapi.NumberProperty{
			Number: float64(t.Surplus),
		},
	}
}

// extractMonth reads the Month title back out of a Notion page. Returns the
// empty string when the page has no usable title.
func extractMonth(page notionapi.Page) string {
	prop, ok := page.Properties["Month"]
	if !ok {
		return ""
	}
	title, ok := prop.(*notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 {
		return ""
	}
	return title.Title[0].PlainText
}
