// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Cleanliness.SampleProbability < 0 || cfg.Cleanliness.SampleProbability > 1 {
		return ErrInvalidCleanlinessConfigs
	}

	if cfg.Cleanliness.FootprintDepthCap < 0 {
		return ErrInvalidCleanlinessConfigs
	}

	return nil
}
