//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package scd implements the slowly-changing-dimension policy. The
// change-tracking mode is configured per attribute, not per entity:
// a type2 attribute change closes the current dimension version and
// opens a new one, a type1 change overwrites in place.
package scd

import (
	"fmt"
	"sort"
)

// Mode is the change-tracking mode for one attribute.
type Mode string

const (
	// Type1 overwrites the current version in place, keeping no history.
	Type1 Mode = "type1"

	// Type2 closes the current version and inserts a new one,
	// preserving the old version for historical fact attribution.
	Type2 Mode = "type2"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Type1, Type2:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid SCD mode %q: want 'type1' or 'type2'", s)
}

// Policy maps attribute names to their change-tracking mode.
// Attributes absent from the policy default to Type1.
type Policy map[string]Mode

// PolicyFromConfig builds a Policy from configured attribute modes.
func PolicyFromConfig(attrs map[string]string) (Policy, error) {
	p := make(Policy, len(attrs))
	for attr, mode := range attrs {
		m, err := ParseMode(mode)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attr, err)
		}
		p[attr] = m
	}
	return p, nil
}

// Mode returns the tracking mode for an attribute.
func (p Policy) Mode(attr string) Mode {
	if m, ok := p[attr]; ok {
		return m
	}
	return Type1
}

// Action is the outcome of comparing an incoming dimension row against
// the stored current version.
type Action int

const (
	// ActionNone means no attribute changed; the load is a no-op.
	ActionNone Action = iota

	// ActionUpdate means only type1 attributes changed; the current
	// version is overwritten in place.
	ActionUpdate

	// ActionVersion means at least one type2 attribute changed; the
	// current version is closed and a new version inserted.
	ActionVersion
)

// String names the action for logs.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionUpdate:
		return "update"
	case ActionVersion:
		return "version"
	}
	return "unknown"
}

// Decide compares stored and incoming attribute values and returns the
// action to take plus the sorted list of changed attributes.
func (p Policy) Decide(current, incoming map[string]string) (Action, []string) {
	var changed []string
	action := ActionNone
	for attr, value := range incoming {
		if current[attr] == value {
			continue
		}
		changed = append(changed, attr)
		if p.Mode(attr) == Type2 {
			action = ActionVersion
		} else if action == ActionNone {
			action = ActionUpdate
		}
	}
	sort.Strings(changed)
	return action, changed
}
