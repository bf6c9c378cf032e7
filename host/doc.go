// Package host defines the capability interface through which the codec
// talks to a dynamically typed host object model.
//
// The codec never owns host objects. It reads attributes, extracts typed
// scalars, indexes sequences and calls constructors, always while holding
// the model's exclusive section:
//
//	tok := model.Acquire()
//	defer tok.Release()
//	v, err := model.GetAttr(tok, obj, "addr")
//
// # Exclusive Access
//
// Host object models are assumed to follow an interpreter-style global lock.
// Lock provides the section and Token is the proof of holding it. Tokens
// are passed down through recursive calls instead of re-acquiring, since
// the section is not reentrant.
//
// # Attributes
//
// GetAttr reports absent names with an error wrapping ErrNoAttribute, so
// callers can tell an optional attribute that is not set from a genuine
// host failure.
package host
