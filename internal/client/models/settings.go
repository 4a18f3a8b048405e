package models

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Settings is the singleton per local installation. It has no owner and is
// never synced.
type Settings struct {
	Theme           Theme `json:"theme"`
	BannerDismissed bool  `json:"bannerDismissed"`
}

// DefaultSettings returns the hardcoded defaults. Loaded settings are decoded
// over a copy of these so that newly introduced keys get sane values for
// existing installations.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, BannerDismissed: false}
}
