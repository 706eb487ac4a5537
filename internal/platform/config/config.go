// Package config reads settings from prefixed environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"videotube/internal/platform/logger"
)

// Conf is a namespaced view over the environment; New().Prefix("YOUTUBE_")
// reads YOUTUBE_API_KEY for key "API_KEY"
type Conf struct{ prefix string }

// New returns a Conf with no prefix
func New() Conf { return Conf{} }

// Prefix returns a child Conf whose keys are prefixed with p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it is non-empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// may parses key with parse, logging and falling back to def on bad input
func may[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Interface("default", def).Msg("invalid config value; using default")
		return def
	}
	return v
}

// MustString panics if key is missing or blank
func (c Conf) MustString(k string) string {
	v, ok := c.lookup(k)
	if !ok {
		logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(k, def string) string {
	if v, ok := c.lookup(k); ok {
		return v
	}
	return def
}

// MayInt returns the value or def
func (c Conf) MayInt(k string, def int) int { return may(c, k, def, strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(k string, def float64) float64 {
	return may(c, k, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def
func (c Conf) MayBool(k string, def bool) bool { return may(c, k, def, strconv.ParseBool) }

// MayDuration returns the value or def; values look like 250ms or 5m
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return may(c, k, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayCSV(k string, def []string) []string {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it case-insensitively matches one of allowed,
// def when unset, and panics otherwise
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := c.MayString(k, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
