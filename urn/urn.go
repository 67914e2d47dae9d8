// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package urn builds and parses the dataspace relative identifiers of catalog objects.
//
// The syntax is urn:dje:<object>:<segment>[:<segment>...]. Every segment is
// query-escaped so that ':' '+' '%' and non ascii characters survive a round trip.
package urn

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const (
	Prefix    = "urn"
	Namespace = "dje"
)

const (
	KindLicense   = "license"
	KindOwner     = "owner"
	KindComponent = "component"
)

// fields lists the segments of each object kind in URN order.
var fields = map[string][]string{
	KindLicense:   {"key"},
	KindOwner:     {"name"},
	KindComponent: {"name", "version"},
}

// Kinds returns the supported object kinds sorted alphabetically.
func Kinds() []string {
	kinds := make([]string, 0, len(fields))
	for k := range fields {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// FieldsOf returns the ordered field names of a kind.
func FieldsOf(kind string) ([]string, bool) {
	f, ok := fields[strings.ToLower(kind)]
	return f, ok
}

// Error is returned for every malformed URN. Its message is meant to be shown to users.
type Error struct {
	URN    string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func newError(urn, format string, args ...any) *Error {
	return &Error{URN: urn, Reason: fmt.Sprintf(format, args...)}
}

// Encode joins already ordered segment values into a URN without any validation of the kind.
func Encode(kind string, segments ...string) string {
	parts := make([]string, 0, len(segments)+3)
	parts = append(parts, Prefix, Namespace, strings.ToLower(kind))
	for _, s := range segments {
		parts = append(parts, url.QueryEscape(strings.TrimSpace(s)))
	}
	return strings.Join(parts, ":")
}

// Build returns the URN of the given kind. Missing fields are encoded as empty segments.
func Build(kind string, values map[string]string) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	names, ok := fields[kind]
	if !ok {
		return "", &Error{Reason: fmt.Sprintf("Unsupported URN object: %q", kind)}
	}
	for name := range values {
		if !slices.Contains(names, name) {
			return "", &Error{Reason: fmt.Sprintf("Unsupported field %q for URN object %q", name, kind)}
		}
	}

	segments := make([]string, len(names))
	for i, name := range names {
		segments[i] = values[name]
	}
	return Encode(kind, segments...), nil
}

// Parse splits a URN into its lower-cased kind and the decoded field values.
func Parse(urn string) (string, map[string]string, error) {
	segments := strings.Split(urn, ":")

	if len(segments) < 3 {
		return "", nil, newError(urn, "Invalid URN format: %q. Expected \"urn:dje:<object>:<segments>\".", urn)
	}

	if strings.ToLower(segments[0]) != Prefix {
		return "", nil, newError(urn, "Invalid URN prefix or namespace. Expected %q and not %q in URN: %q.", Prefix, segments[0], urn)
	}

	if strings.ToLower(segments[1]) != Namespace {
		return "", nil, newError(urn, "Invalid URN prefix or namespace. Expected %q and not %q in URN: %q.", Prefix+":"+Namespace, segments[0]+":"+segments[1], urn)
	}

	kind := strings.ToLower(strings.TrimSpace(segments[2]))
	names, ok := fields[kind]
	if !ok {
		return "", nil, newError(urn, "Unsupported URN object: %q in URN: %q.", segments[2], urn)
	}

	values := segments[3:]
	if len(values) != len(names) {
		return "", nil, newError(urn, "Invalid number of segments in URN: %q.", urn)
	}

	decoded := make(map[string]string, len(names))
	for i, name := range names {
		v, err := url.QueryUnescape(values[i])
		if err != nil {
			return "", nil, newError(urn, "Invalid encoding of segment %q in URN: %q.", values[i], urn)
		}
		decoded[name] = strings.TrimSpace(v)
	}

	return kind, decoded, nil
}
