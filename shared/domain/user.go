package domain

// User is the Telegram account that opened the Mini-App.
type User struct {
	Id           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

type ColorScheme string

const (
	Light ColorScheme = "light"
	Dark  ColorScheme = "dark"
)

// ParseColorScheme maps anything but "dark" to Light.
func ParseColorScheme(s string) ColorScheme {
	if ColorScheme(s) == Dark {
		return Dark
	}
	return Light
}

// Session is what a session token carries between requests.
type Session struct {
	User  User        `json:"user"`
	Theme ColorScheme `json:"theme"`
}
