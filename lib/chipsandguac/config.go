package chipsandguac

import (
	"github.com/jquatier/chipsandguac/lib/configutil"
)

// Config mirrors Options for loading from a json5 file. Every field is
// optional; operations that need a missing one fail with a
// ConfigurationError.
type Config struct {
	BaseUrl     string `json:"base_url"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	LocationId  int    `json:"location_id"`
	PhoneNumber string `json:"phone_number"`
}

// FromConfigFile builds a client from a config file found in the current
// directory or any parent, with `<name>.local.<ext>` overrides merged in.
func FromConfigFile(name string) (*Client, error) {
	config, err := configutil.ReadRecursively[Config](name)
	if err != nil {
		return nil, err
	}
	return NewClient(Options{
		BaseUrl:     config.BaseUrl,
		Email:       config.Email,
		Password:    config.Password,
		LocationId:  config.LocationId,
		PhoneNumber: config.PhoneNumber,
	})
}
