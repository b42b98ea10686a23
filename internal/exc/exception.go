// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"gopkg.microglot.org/bfc.go/internal/idl"
)

type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
}

type Location struct {
	idl.Location
	URI string
}

type exc struct {
	code     string
	message  string
	location Location
	causes   []error
}

func (e *exc) Error() string {
	return fmt.Sprintf("%s:%d:%d -- %s: %s", e.location.URI, e.location.Line, e.location.Column, e.code, e.message)
}

func (e *exc) Code() string {
	return e.code
}

func (e *exc) Message() string {
	return e.message
}

func (e *exc) Location() Location {
	return e.location
}

// Unwrap exposes every cause so that errors.Is and errors.As search the
// whole tree of an exception built with Join.
func (e *exc) Unwrap() []error {
	return e.causes
}

func New(location Location, code string, message string) Exception {
	return &exc{
		location: location,
		message:  message,
		code:     code,
	}
}

func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	message := err.Error()
	if e, ok := err.(Exception); ok {
		message = e.Message()
	}
	return &exc{
		location: location,
		code:     code,
		message:  message,
		causes:   []error{err},
	}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}

// Join creates an exception whose message is prefixed to the messages of all
// causes, each in parentheses and in order. Nil causes are dropped.
func Join(location Location, code string, message string, causes ...error) Exception {
	e := &exc{
		location: location,
		code:     code,
		message:  message,
	}
	for _, cause := range causes {
		if cause == nil {
			continue
		}
		e.causes = append(e.causes, cause)
		if ce, ok := cause.(Exception); ok {
			e.message = fmt.Sprintf("%s (%s)", e.message, ce.Message())
			continue
		}
		e.message = fmt.Sprintf("%s (%s)", e.message, cause.Error())
	}
	return e
}

// Relocate returns a copy of the exception positioned at the given location.
// Code, message, and causes are preserved.
func Relocate(e Exception, location Location) Exception {
	if e == nil {
		return nil
	}
	var causes []error
	if u, ok := e.(interface{ Unwrap() []error }); ok {
		causes = u.Unwrap()
	}
	return &exc{
		location: location,
		code:     e.Code(),
		message:  e.Message(),
		causes:   causes,
	}
}

// HasCode reports whether err, or any error in its tree, is an Exception with
// the given code.
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(Exception); ok && e.Code() == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, cause := range u.Unwrap() {
			if HasCode(cause, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return HasCode(u.Unwrap(), code)
	}
	return false
}
