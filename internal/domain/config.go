package domain

// CustomerDefaults prefill the order form.
type CustomerDefaults struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Profile stores per-backend client settings.
type Profile struct {
	Name      string           `json:"name"`
	IsDefault bool             `json:"is_default"`
	BaseURL   string           `json:"base_url,omitempty"`
	Customer  CustomerDefaults `json:"customer"`
}

// Config stores all local profiles.
type Config struct {
	Profiles []Profile `json:"profiles"`
}
