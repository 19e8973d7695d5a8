package entity

// Feature describes one row of the Pro feature list.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// ProFeatures is the static feature list shown on the upgrade screen.
var ProFeatures = []Feature{
	{
		Icon:        "infinity",
		Title:       "Unlimited countdowns",
		Description: "Track every race weekend of the season at once.",
	},
	{
		Icon:        "bell.badge",
		Title:       "Session alerts",
		Description: "Reminders for practice, qualifying and lights out.",
	},
	{
		Icon:        "rectangle.3.group",
		Title:       "Home screen widgets",
		Description: "Countdowns on your home and lock screens.",
	},
	{
		Icon:        "paintpalette",
		Title:       "Custom themes",
		Description: "Team colors and custom accents for the whole app.",
	},
	{
		Icon:        "arrow.triangle.2.circlepath",
		Title:       "Multi-device sync",
		Description: "Your races and settings follow you across devices.",
	},
}
