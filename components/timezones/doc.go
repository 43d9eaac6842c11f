// Package timezones provides IANA timezone list loading, search helpers and
// zone-name validation for callers that feed the engine's _timeZone global,
// such as the views CLI.
package timezones
