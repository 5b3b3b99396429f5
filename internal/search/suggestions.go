package search

// Suggestion is a canned query offered before the first search.
type Suggestion struct {
	Label string
	Query string
}

// Group is a titled list of suggestions.
type Group struct {
	Title string
	Items []Suggestion
}

// QuickCategories are the one-key searches shown on the home screen.
func QuickCategories() []Suggestion {
	return []Suggestion{
		{Label: "Top Developers", Query: "followers:>1000"},
		{Label: "JavaScript Devs", Query: "language:javascript"},
		{Label: "React Experts", Query: "react"},
		{Label: "Trending", Query: "created:>2023-01-01"},
	}
}

// DefaultGroups is the built-in suggestion catalog. Config may replace it.
func DefaultGroups() []Group {
	return []Group{
		{Title: "Popular Searches", Items: []Suggestion{
			{Label: "Top JavaScript Developers", Query: "language:javascript followers:>1000"},
			{Label: "React Experts", Query: "react followers:>500"},
			{Label: "Open Source Contributors", Query: "type:user repos:>10"},
		}},
		{Title: "By Location", Items: []Suggestion{
			{Label: "San Francisco", Query: `location:"san francisco"`},
			{Label: "New York", Query: `location:"new york"`},
			{Label: "London", Query: "location:london"},
		}},
		{Title: "By Company", Items: []Suggestion{
			{Label: "Google", Query: "company:google"},
			{Label: "Microsoft", Query: "company:microsoft"},
			{Label: "Meta", Query: "company:facebook"},
		}},
		{Title: "By Language", Items: []Suggestion{
			{Label: "Python", Query: "language:python"},
			{Label: "TypeScript", Query: "language:typescript"},
			{Label: "Rust", Query: "language:rust"},
		}},
	}
}

// Flatten returns every suggestion of groups in display order, skipping
// entries without a query.
func Flatten(groups []Group) []Suggestion {
	var out []Suggestion
	for _, g := range groups {
		for _, s := range g.Items {
			if s.Query == "" {
				continue
			}
			if s.Label == "" {
				s.Label = s.Query
			}
			out = append(out, s)
		}
	}
	return out
}
