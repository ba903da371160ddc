package models

// Settings is the singleton application configuration. It is persisted as
// key/value rows and replaced wholesale on save.
type Settings struct {
	SOSDefaultMinutes int `json:"sosDefaultMinutes"`
	CooldownMin       int `json:"cooldownMin"`
}
