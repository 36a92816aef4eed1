// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

// Package i18n provides localized response messages.
//
// Message catalogs are embedded at build time, one JSON file per
// language. Lookups never fail: a missing key returns the key itself so
// a forgotten translation degrades to a debuggable message instead of
// an empty string.
package i18n

import (
	"embed"
	"strings"

	json "github.com/goccy/go-json"
)

//go:embed messages.*.json
var catalogFS embed.FS

// DefaultLanguage is used when no supported language can be negotiated.
const DefaultLanguage = "es"

var catalogs = map[string]map[string]string{}

//nolint:gochecknoinits // catalogs are embedded and must be ready before any request
func init() {
	for _, lang := range []string{"en", "es"} {
		data, err := catalogFS.ReadFile("messages." + lang + ".json")
		if err != nil {
			panic("i18n: missing embedded catalog for " + lang)
		}
		msgs := map[string]string{}
		if err := json.Unmarshal(data, &msgs); err != nil {
			panic("i18n: invalid catalog for " + lang + ": " + err.Error())
		}
		catalogs[lang] = msgs
	}
}

// Supported reports whether a message catalog exists for lang.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// Get returns the message for key in the given language. Unknown
// languages fall back to the default catalog; unknown keys return the
// key itself.
func Get(lang, key string) string {
	msgs, ok := catalogs[lang]
	if !ok {
		msgs = catalogs[DefaultLanguage]
	}
	if msg, ok := msgs[key]; ok {
		return msg
	}
	return key
}

// Match picks a supported language from an Accept-Language header
// value. Quality factors are ignored; the first supported primary
// subtag wins. When nothing matches, fallback is returned if it names a
// supported catalog, otherwise the package default.
func Match(acceptLanguage, fallback string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if i := strings.IndexByte(tag, '-'); i >= 0 {
			tag = tag[:i]
		}
		tag = strings.ToLower(strings.TrimSpace(tag))
		if Supported(tag) {
			return tag
		}
	}
	if Supported(fallback) {
		return fallback
	}
	return DefaultLanguage
}
