package llm

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

// apiKeyEnvVars binds provider credentials to their conventional environment
// variables, in addition to the HRSKILLS_ prefixed ones.
var apiKeyEnvVars = map[string][]string{
	"anthropic.api_key": {"ANTHROPIC_API_KEY"},
	"openai.api_key":    {"OPENAI_API_KEY"},
	"google.api_key":    {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
}

// BindEnv binds the provider credential keys on v to the environment
func BindEnv(v *viper.Viper) error {
	for key, envs := range apiKeyEnvVars {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return errors.Wrapf(err, "failed to bind %s", key)
		}
	}
	return nil
}

// GetConfigFromViper decodes the LLM configuration from the global viper
// instance, applies the active profile and resolves model aliases.
func GetConfigFromViper() (llmtypes.Config, error) {
	return ConfigFromViper(viper.GetViper())
}

// ConfigFromViper is GetConfigFromViper for an explicit viper instance
func ConfigFromViper(v *viper.Viper) (llmtypes.Config, error) {
	var config llmtypes.Config
	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to unmarshal configuration")
	}

	profiles := config.Profiles
	if profileName := activeProfile(v); profileName != "" {
		profile, ok := profiles[profileName]
		if !ok {
			return config, errors.Errorf("profile %q not found in configuration", profileName)
		}
		if err := applyProfile(&config, profile); err != nil {
			return config, err
		}
	}

	config.Model = resolveModelAlias(config.Model, config.Aliases)
	return config, nil
}

func activeProfile(v *viper.Viper) string {
	profile := v.GetString("profile")
	if profile == "default" {
		return ""
	}
	return profile
}

func applyProfile(config *llmtypes.Config, profile llmtypes.ProfileConfig) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}

	if err := decoder.Decode(map[string]any(profile)); err != nil {
		return errors.Wrap(err, "failed to apply profile configuration")
	}
	return nil
}

func resolveModelAlias(model string, aliases map[string]string) string {
	if resolved, ok := aliases[model]; ok && resolved != "" {
		return resolved
	}
	return model
}
