package app

import "encoding/json"

// Settings is the locally persisted preferences record.
type Settings struct {
	Theme   string `json:"theme"`
	Vibrate bool   `json:"vibrate"`
	Notify  bool   `json:"notify"`
	Edit    bool   `json:"edit"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{Theme: "light"}
}

// DecodeSettings parses a stored settings record. Missing or corrupt fields
// fall back to the defaults field by field; a record that is not JSON at all
// yields the defaults. The load never fails.
func DecodeSettings(raw string) Settings {
	out := DefaultSettings()
	if raw == "" {
		return out
	}
	var parsed struct {
		Theme   *string `json:"theme"`
		Vibrate *bool   `json:"vibrate"`
		Notify  *bool   `json:"notify"`
		Edit    *bool   `json:"edit"`
	}
	// A type mismatch on one field must not lose the others, so the
	// unmarshal error is deliberately ignored; fields that failed to
	// decode stay nil and keep their defaults.
	_ = json.Unmarshal([]byte(raw), &parsed)
	if parsed.Theme != nil && (*parsed.Theme == "light" || *parsed.Theme == "dark") {
		out.Theme = *parsed.Theme
	}
	if parsed.Vibrate != nil {
		out.Vibrate = *parsed.Vibrate
	}
	if parsed.Notify != nil {
		out.Notify = *parsed.Notify
	}
	if parsed.Edit != nil {
		out.Edit = *parsed.Edit
	}
	return out
}

// EncodeSettings serializes the record for the local store.
func EncodeSettings(s Settings) string {
	data, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}
