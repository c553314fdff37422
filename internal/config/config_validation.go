// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the server relies on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.MinSecretKeyLength < 1 {
		return ErrInvalidAuthConfigs
	}

	if cfg.RateLimit.MaxRequests < 1 || cfg.RateLimit.Window <= 0 {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}
