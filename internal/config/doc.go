// Package config loads, normalizes, and validates vidgrab configuration.
//
// Values come from a TOML file (default ~/.config/vidgrab/config.toml, then
// ./vidgrab.toml) layered over Default(), followed by environment overrides
// such as VIDGRAB_SERVER_URL and VIDGRAB_PROXY_URL. Paths are expanded to
// absolute form so other packages never see "~".
package config
