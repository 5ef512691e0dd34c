// Package config loads Codemend's YAML configuration. Settings merge with
// CLI > local (.codemend.yml in the project) > global
// ($XDG_CONFIG_HOME/codemend/config.yml) precedence.
package config
