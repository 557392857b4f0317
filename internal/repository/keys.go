package repository

// Storage keys. Shapes are versioned by the suffix; changing a shape means a
// new key.
const (
	KeySettings      = "gugudan.settings.v1"
	KeyLastResult    = "gugudan.lastResult.v1"
	KeyRecentResults = "gugudan.recentResults.v1"
	KeyItemStats     = "gugudan.itemStats.v1"
	KeyRewards       = "gugudan.rewards.v1"
	KeyActiveSession = "gugudan.activeSession.v1"
	KeyDaily         = "gugudan.daily.v1"
)

// AllKeys lists every key the app owns, in reset order
var AllKeys = []string{
	KeySettings,
	KeyLastResult,
	KeyRecentResults,
	KeyItemStats,
	KeyRewards,
	KeyActiveSession,
	KeyDaily,
}
