package model

import (
	"fmt"
	"strings"
)

// OptionType is the closed set of declared configuration option types.
type OptionType string

const (
	OptionText         OptionType = "text"
	OptionChoice       OptionType = "choice"
	OptionInteger      OptionType = "integer"
	OptionIntegerRange OptionType = "integer-range"
	OptionBoolean      OptionType = "boolean"
	OptionFile         OptionType = "file"
)

var optionTypes = []OptionType{OptionText, OptionChoice, OptionInteger, OptionIntegerRange, OptionBoolean, OptionFile}

func ParseOptionType(s string) (OptionType, error) {
	want := OptionType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range optionTypes {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("model: unknown option type %q", s)
}

// Option describes one configurable project option. Type is empty when the
// source declared a type outside the closed set; RawType keeps what was read.
type Option struct {
	Name        string     `json:"name" yaml:"name"`
	Type        OptionType `json:"-" yaml:"-"`
	RawType     string     `json:"type" yaml:"type"`
	Scope       string     `json:"scope,omitempty" yaml:"scope,omitempty"`
	Group       string     `json:"group,omitempty" yaml:"group,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any        `json:"default,omitempty" yaml:"default,omitempty"`
	Multiple    bool       `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Choices     []string   `json:"choices,omitempty" yaml:"choices,omitempty"`
	Min         *int       `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *int       `json:"max,omitempty" yaml:"max,omitempty"`
}

// Resolve fills Type from RawType. Unknown types leave Type empty.
func (o *Option) Resolve() error {
	t, err := ParseOptionType(o.RawType)
	if err != nil {
		o.Type = ""
		return err
	}
	o.Type = t
	return nil
}

func (o *Option) Label() string {
	if o == nil {
		return ""
	}
	return strings.ReplaceAll(o.Name, "_", " ")
}
