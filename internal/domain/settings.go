package domain

import (
	"slices"
	"strconv"
)

// Settings groups
const (
	GroupNotifications = "notifications"
	GroupPreferences   = "preferences"
	GroupPrivacy       = "privacy"
)

// Setting keys
const (
	KeyMatchReminders   = "match_reminders"
	KeyResultAlerts     = "result_alerts"
	KeyRewardUpdates    = "reward_updates"
	KeyMarketingEmails  = "marketing_emails"
	KeyLanguage         = "language"
	KeyTheme            = "theme"
	KeyAutoPredictions  = "auto_predictions"
	KeyShowProfileStats = "show_profile_stats"
	KeyShowRealName     = "show_real_name"
	KeyPublicProfile    = "public_profile"
)

var (
	Languages = []string{"english", "hindi", "tamil", "telugu"}
	Themes    = []string{"light", "dark", "system"}
)

// NotificationSettings are the notification toggles
type NotificationSettings struct {
	MatchReminders  bool `json:"match_reminders"`
	ResultAlerts    bool `json:"result_alerts"`
	RewardUpdates   bool `json:"reward_updates"`
	MarketingEmails bool `json:"marketing_emails"`
}

// PreferenceSettings are the display preferences
type PreferenceSettings struct {
	Language        string `json:"language"`
	Theme           string `json:"theme"`
	AutoPredictions bool   `json:"auto_predictions"`
}

// PrivacySettings are the privacy toggles
type PrivacySettings struct {
	ShowProfileStats bool `json:"show_profile_stats"`
	ShowRealName     bool `json:"show_real_name"`
	PublicProfile    bool `json:"public_profile"`
}

// Settings is the full settings screen state
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Preferences   PreferenceSettings   `json:"preferences"`
	Privacy       PrivacySettings      `json:"privacy"`
}

// DefaultSettings returns the initial settings of a fresh screen
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			MatchReminders: true,
			ResultAlerts:   true,
			RewardUpdates:  true,
		},
		Preferences: PreferenceSettings{
			Language: "english",
			Theme:    "light",
		},
		Privacy: PrivacySettings{
			ShowProfileStats: true,
			PublicProfile:    true,
		},
	}
}

// Apply returns a copy of s with group/key set to value. Boolean settings
// accept "true" and "false". Nothing is changed on error.
func (s Settings) Apply(group, key, value string) (Settings, error) {
	out := s
	switch group {
	case GroupNotifications:
		b, err := parseToggle(value)
		if err != nil {
			return s, err
		}
		switch key {
		case KeyMatchReminders:
			out.Notifications.MatchReminders = b
		case KeyResultAlerts:
			out.Notifications.ResultAlerts = b
		case KeyRewardUpdates:
			out.Notifications.RewardUpdates = b
		case KeyMarketingEmails:
			out.Notifications.MarketingEmails = b
		default:
			return s, ErrUnknownSetting
		}
	case GroupPreferences:
		switch key {
		case KeyLanguage:
			if !slices.Contains(Languages, value) {
				return s, ErrInvalidSettingValue
			}
			out.Preferences.Language = value
		case KeyTheme:
			if !slices.Contains(Themes, value) {
				return s, ErrInvalidSettingValue
			}
			out.Preferences.Theme = value
		case KeyAutoPredictions:
			b, err := parseToggle(value)
			if err != nil {
				return s, err
			}
			out.Preferences.AutoPredictions = b
		default:
			return s, ErrUnknownSetting
		}
	case GroupPrivacy:
		b, err := parseToggle(value)
		if err != nil {
			return s, err
		}
		switch key {
		case KeyShowProfileStats:
			out.Privacy.ShowProfileStats = b
		case KeyShowRealName:
			out.Privacy.ShowRealName = b
		case KeyPublicProfile:
			out.Privacy.PublicProfile = b
		default:
			return s, ErrUnknownSetting
		}
	default:
		return s, ErrUnknownSetting
	}
	return out, nil
}

func parseToggle(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, ErrInvalidSettingValue
	}
	return b, nil
}
