package cache

// Key builders for the read-through caches. Every key starts with the user
// ID so a write can drop all of a user's derived views in one sweep.

func DashboardKey(userID string) string {
	return userID + ":dashboard"
}

func InsightsKey(userID string) string {
	return userID + ":insights"
}

func PortfolioKey(userID string) string {
	return userID + ":portfolio"
}

func UserPrefix(userID string) string {
	return userID + ":"
}
