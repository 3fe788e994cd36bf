// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package suri builds and parses secret URIs: a secret phrase followed by an
// optional derivation path ("//hard" and "/soft" junctions) and an optional
// password introduced by "///".
package suri

import (
	"errors"
	"fmt"
	"strings"
)

// PasswordSeparator introduces the password part of a SURI.
const PasswordSeparator = "///"

var (
	// ErrEmptyPhrase is returned when a SURI would have no secret phrase.
	ErrEmptyPhrase = errors.New("cannot construct an SURI from an empty phrase")

	// ErrInvalidPath is returned for malformed derivation paths.
	ErrInvalidPath = errors.New("derivation path is invalid")
)

// Parts are the components of a SURI.
type Parts struct {
	Phrase     string
	DerivePath string
	Password   string
}

// Junction is one step of a derivation path.
type Junction struct {
	Hard  bool
	Value string
}

// String renders the junction in path form.
func (j Junction) String() string {
	if j.Hard {
		return "//" + j.Value
	}
	return "/" + j.Value
}

// Derivation is the content of the derivation path field: the path and the
// password that follows "///".
type Derivation struct {
	Path     string
	Password string
}

// String renders the derivation in field form. The separator is only
// written when a password is set.
func (d Derivation) String() string {
	if d.Password == "" {
		return d.Path
	}
	return d.Path + PasswordSeparator + d.Password
}

// Construct joins phrase, path and password into a SURI. The password
// separator is only written when a password is set.
func Construct(p Parts) (string, error) {
	if p.Phrase == "" {
		return "", ErrEmptyPhrase
	}
	if _, err := ParseJunctions(p.DerivePath); err != nil {
		return "", err
	}
	return p.Phrase + Derivation{Path: p.DerivePath, Password: p.Password}.String(), nil
}

// Parse splits a SURI into its parts and validates the path.
func Parse(s string) (Parts, error) {
	rest, password, _ := strings.Cut(s, PasswordSeparator)

	phrase, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		phrase, path = rest[:i], rest[i:]
	}
	if strings.TrimSpace(phrase) == "" {
		return Parts{}, ErrEmptyPhrase
	}
	if _, err := ParseJunctions(path); err != nil {
		return Parts{}, err
	}

	return Parts{Phrase: phrase, DerivePath: path, Password: password}, nil
}

// ParseDerivationPath splits derivation field input of the form
// "//hard/soft///password" and validates the path part. On error the
// returned Derivation still carries the raw split so the field can keep
// showing what the user typed.
func ParseDerivationPath(input string) (Derivation, error) {
	path, password, _ := strings.Cut(input, PasswordSeparator)
	d := Derivation{Path: path, Password: password}
	if _, err := ParseJunctions(path); err != nil {
		return d, err
	}
	return d, nil
}

// ParseJunctions parses a derivation path into junctions. The empty path
// has no junctions. Every junction must be non-empty.
func ParseJunctions(path string) ([]Junction, error) {
	var junctions []Junction
	for rest := path; rest != ""; {
		if rest[0] != '/' {
			return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPath, path)
		}
		rest = rest[1:]

		hard := false
		if strings.HasPrefix(rest, "/") {
			hard = true
			rest = rest[1:]
		}

		end := strings.IndexByte(rest, '/')
		if end < 0 {
			end = len(rest)
		}
		value := rest[:end]
		if value == "" {
			return nil, fmt.Errorf("%w: empty junction in %q", ErrInvalidPath, path)
		}
		if strings.ContainsAny(value, " \t\n") {
			return nil, fmt.Errorf("%w: junction %q contains whitespace", ErrInvalidPath, value)
		}

		junctions = append(junctions, Junction{Hard: hard, Value: value})
		rest = rest[end:]
	}
	return junctions, nil
}
