package constants

const (
	SettingOnboarded      = "onboarded"
	SettingSelectedFilter = "selected_filter"
	SettingTimezone       = "timezone"
	SettingLanguage       = "language"

	DefaultOnboarded      = false
	DefaultSelectedFilter = "all"
	DefaultTimezone       = "Local" // Use system local timezone by default
	DefaultLanguage       = "ru"
)
