// Package notifications delivers analysis run events via ntfy.
//
// The default implementation publishes to the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled, so callers never need to check whether push delivery is
// configured. All run code depends only on the Service interface.
package notifications
