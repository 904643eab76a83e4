package repository

// Profile is the singleton Green API connection profile. JSON field names
// are kept compatible with pre-existing config/profile.json documents.
type Profile struct {
	Name             string `json:"name"`
	APIURL           string `json:"apiUrl"`
	MediaURL         string `json:"mediaUrl"`
	InstanceID       string `json:"idInstance"`
	APITokenInstance string `json:"apiTokenInstance"`
}

// Complete reports whether the profile carries everything a text send
// needs. MediaURL is only required for attachment sends.
func (p Profile) Complete() bool {
	return p.APIURL != "" && p.InstanceID != "" && p.APITokenInstance != ""
}

func DefaultProfile() Profile {
	return Profile{
		Name:             "NAME_PROFILE",
		APIURL:           "YOUR_API_URL",
		MediaURL:         "YOUR_MEDIA_URL",
		InstanceID:       "YOUR_ID_INSTANCE",
		APITokenInstance: "YOUR_API_TOKEN_INSTANCE",
	}
}

// IntervalSetting is the singleton pause, in seconds, between two
// consecutive sends of a broadcast.
type IntervalSetting struct {
	Interval int `json:"interval"`
}

const (
	DefaultIntervalSeconds = 5
	minIntervalSeconds     = 1
	maxIntervalSeconds     = 60
)

// IsValidInterval accepts whole seconds between 1 and 60 inclusive.
func IsValidInterval(seconds int) bool {
	return seconds >= minIntervalSeconds && seconds <= maxIntervalSeconds
}

// Template is one persisted reusable message. FilePath is non-empty iff
// HasFile is true.
type Template struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	HasFile  bool   `json:"hasFile"`
	FilePath string `json:"filePath,omitempty"`
}

// TemplateCatalog is the single persisted document holding every template,
// in creation order.
type TemplateCatalog struct {
	Templates []Template `json:"templates"`
}
