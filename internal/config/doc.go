// Package config loads and validates the gabble configuration.
//
// Configuration is a YAML file with ${VAR} environment expansion, plus a
// small set of flat environment overrides for secrets so deployments can
// keep tokens out of the file entirely:
//
//	GABBLE_TELEGRAM_TOKEN  overrides telegram.token
//	GABBLE_OPENAI_API_KEY  overrides openai.api_key
//	GABBLE_OPENAI_BASE_URL overrides openai.base_url
package config
