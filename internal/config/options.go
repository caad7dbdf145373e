package config

import (
	"fmt"
	"sort"
	"strings"
)

// SourceName is the only version source this module provides.
const SourceName = "regex_commit"

// Default templates. Both use {current_version} and {new_version}.
const (
	DefaultCommitMessage = "Bump version {current_version} → {new_version}"
	DefaultTagName       = "v{new_version}"
	DefaultTagMessage    = DefaultCommitMessage
)

// Option keys as they appear in configuration files.
const (
	KeySource          = "source"
	KeyPath            = "path"
	KeyPattern         = "pattern"
	KeyCheckDirty      = "check_dirty"
	KeyCommit          = "commit"
	KeyCommitMessage   = "commit_message"
	KeyCommitExtraArgs = "commit_extra_args"
	KeyTag             = "tag"
	KeyTagName         = "tag_name"
	KeyTagMessage      = "tag_message"
	KeyTagSign         = "tag_sign"
)

// Options is the validated configuration of the regex_commit source.
type Options struct {
	Source          string
	Path            string
	Pattern         string
	CheckDirty      bool
	Commit          bool
	CommitMessage   string
	CommitExtraArgs []string
	Tag             bool
	TagName         string
	TagMessage      string
	TagSign         bool
}

// Defaults returns the options used for keys a configuration omits.
func Defaults() Options {
	return Options{
		Source:          SourceName,
		CheckDirty:      true,
		Commit:          true,
		CommitMessage:   DefaultCommitMessage,
		CommitExtraArgs: []string{},
		Tag:             true,
		TagName:         DefaultTagName,
		TagMessage:      DefaultTagMessage,
		TagSign:         true,
	}
}

// TypeError reports an option whose value has the wrong type.
type TypeError struct {
	Option string
	Want   string
	Got    any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("option `%s` must be %s, got %T", e.Option, e.Want, e.Got)
}

type optionKind int

const (
	kindBool optionKind = iota
	kindString
	kindStringList
)

var optionKinds = map[string]optionKind{
	KeySource:          kindString,
	KeyPath:            kindString,
	KeyPattern:         kindString,
	KeyCheckDirty:      kindBool,
	KeyCommit:          kindBool,
	KeyCommitMessage:   kindString,
	KeyCommitExtraArgs: kindStringList,
	KeyTag:             kindBool,
	KeyTagName:         kindString,
	KeyTagMessage:      kindString,
	KeyTagSign:         kindBool,
}

// FromMap validates a decoded configuration table and overlays it on
// Defaults. Unknown keys and mistyped values are rejected.
func FromMap(raw map[string]any) (Options, error) {
	opts := Defaults()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		kind, ok := optionKinds[key]
		if !ok {
			return Options{}, fmt.Errorf("unknown option `%s`", key)
		}

		switch kind {
		case kindBool:
			b, ok := value.(bool)
			if !ok {
				return Options{}, &TypeError{Option: key, Want: "a boolean", Got: value}
			}
			opts.setBool(key, b)
		case kindString:
			s, ok := value.(string)
			if !ok {
				return Options{}, &TypeError{Option: key, Want: "a string", Got: value}
			}
			opts.setString(key, s)
		case kindStringList:
			list, err := toStringList(key, value)
			if err != nil {
				return Options{}, err
			}
			opts.CommitExtraArgs = list
		}
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o *Options) setBool(key string, v bool) {
	switch key {
	case KeyCheckDirty:
		o.CheckDirty = v
	case KeyCommit:
		o.Commit = v
	case KeyTag:
		o.Tag = v
	case KeyTagSign:
		o.TagSign = v
	}
}

func (o *Options) setString(key, v string) {
	switch key {
	case KeySource:
		o.Source = v
	case KeyPath:
		o.Path = v
	case KeyPattern:
		o.Pattern = v
	case KeyCommitMessage:
		o.CommitMessage = v
	case KeyTagName:
		o.TagName = v
	case KeyTagMessage:
		o.TagMessage = v
	}
}

func toStringList(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Option: key, Want: "a list of strings", Got: value}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &TypeError{Option: key, Want: "a list", Got: value}
	}
}

// Validate checks the cross-field rules that types alone cannot express.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Path) == "" {
		return fmt.Errorf("option `%s` must be set to the file containing the version", KeyPath)
	}
	if o.Tag && strings.TrimSpace(o.TagName) == "" {
		return fmt.Errorf("option `%s` must not be empty when tagging is enabled", KeyTagName)
	}
	return nil
}
