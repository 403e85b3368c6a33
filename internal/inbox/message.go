package inbox

// Tier is the colour band a progress value falls into
type Tier string

// Progress tiers from best to worst
const (
	TierComplete Tier = "complete"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierCritical Tier = "critical"
)

// ProgressMessage returns the motivational line shown next to the progress bar
func ProgressMessage(progress float64) string {
	switch {
	case progress >= 100:
		return "🎉 Inbox Zero Achieved!"
	case progress >= 90:
		return "🔥 Almost there! Just a few more emails."
	case progress >= 75:
		return "💪 Great progress! Keep going."
	case progress >= 50:
		return "📈 You're halfway to Inbox Zero!"
	case progress >= 25:
		return "🚀 Good start! Keep clearing emails."
	default:
		return "📧 Time to start clearing your inbox!"
	}
}

// ProgressTier maps a progress value to its colour tier
func ProgressTier(progress float64) Tier {
	switch {
	case progress >= 100:
		return TierComplete
	case progress >= 80:
		return TierHigh
	case progress >= 60:
		return TierMedium
	case progress >= 40:
		return TierLow
	default:
		return TierCritical
	}
}
