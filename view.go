package moneyapp

// View identifies one of the five presentation views.
type View int

const (
	ViewSummary View = iota
	ViewAccounts
	ViewHoldings
	ViewScenario
	ViewSettings
)

func (v View) String() string {
	switch v {
	case ViewAccounts:
		return "accounts"
	case ViewHoldings:
		return "holdings"
	case ViewScenario:
		return "scenario"
	case ViewSettings:
		return "settings"
	default:
		return "summary"
	}
}

// ParseView maps a route token onto a view. Unset or unrecognized tokens
// select the summary view.
func ParseView(token string) View {
	switch token {
	case "summary", "dashboard":
		return ViewSummary
	case "accounts":
		return ViewAccounts
	case "holdings":
		return ViewHoldings
	case "scenario", "scenarios":
		return ViewScenario
	case "settings":
		return ViewSettings
	default:
		return ViewSummary
	}
}
