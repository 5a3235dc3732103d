// Package domain contains the core model of the reference registry.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// net/http, or the filesystem. Infra/adapters map into/from these types.
//
// The three error families (EntryError, DownloadError, RegistryError) are kept apart on
// purpose; they only meet at the host boundary, see package hosterr.
package domain
