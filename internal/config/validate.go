package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.JWKSURL, validation.Required, is.URL),
		validation.Field(&c.RedisURL, is.RequestURI),
		validation.Field(&c.IndexRetries, validation.Min(0)),
		validation.Field(&c.FetchTimeout, validation.Min(int64(0))),
		validation.Field(&c.LocalFetchRoot, validation.Required),
		validation.Field(&c.LogMaxFiles, validation.Required, validation.Min(1)),
	)
}
