package output

import (
	"strconv"

	"github.com/agentstation/humansort/pkg/ranking"
)

// RankedItem is one row of a ranking listing.
type RankedItem struct {
	Rank   int     `json:"rank" yaml:"rank"`
	Value  string  `json:"value" yaml:"value"`
	Rating float64 `json:"rating" yaml:"rating"`
}

// Ranking is a printable ranking listing.
type Ranking struct {
	Items       []RankedItem `json:"items" yaml:"items"`
	ShowRatings bool         `json:"-" yaml:"-"`
}

// NewRanking collects up to limit items from r. limit <= 0 takes all.
func NewRanking(r *ranking.Ranked, limit int, showRatings bool) Ranking {
	out := Ranking{Items: []RankedItem{}, ShowRatings: showRatings}
	for rank, item := range r.All() {
		out.Items = append(out.Items, RankedItem{Rank: rank, Value: item.Value, Rating: item.Rating})
		if limit > 0 && len(out.Items) >= limit {
			break
		}
	}
	return out
}

// Lines implements Lines.
func (r Ranking) Lines() []string {
	lines := make([]string, len(r.Items))
	for i, item := range r.Items {
		if r.ShowRatings {
			lines[i] = item.Value + "\t" + formatRating(item.Rating)
		} else {
			lines[i] = item.Value
		}
	}
	return lines
}

// TableData implements Tabular.
func (r Ranking) TableData() Data {
	data := Data{
		Headers:         []string{"#", "Item"},
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
	if r.ShowRatings {
		data.Headers = append(data.Headers, "Rating")
		data.ColumnAlignment = append(data.ColumnAlignment, AlignRight)
	}
	for _, item := range r.Items {
		row := []string{strconv.Itoa(item.Rank), item.Value}
		if r.ShowRatings {
			row = append(row, formatRating(item.Rating))
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 3, 64)
}
