package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Field is a registered setting: its key, default value and help text. Allowed, when set,
// lists the only accepted string values; Min bounds integer settings from below.
type Field struct {
	Key         string
	Value       any
	Description string
	Allowed     []string
	Min         mo.Option[int]
}

// Pretty renders the field for `reel config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Reel + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Validate reports whether v is acceptable for the field. v must already have the default's type.
func (f *Field) Validate(v any) error {
	if reflect.TypeOf(v) != reflect.TypeOf(f.Value) {
		return fmt.Errorf("%s expects %s, got %T", f.Key, f.typeName(), v)
	}

	switch value := v.(type) {
	case string:
		if len(f.Allowed) > 0 && !lo.Contains(f.Allowed, value) {
			return fmt.Errorf("%s must be one of %s, got %q", f.Key, strings.Join(f.Allowed, ", "), value)
		}
	case int:
		if floor, ok := f.Min.Get(); ok && value < floor {
			return fmt.Errorf("%s must be at least %d, got %d", f.Key, floor, value)
		}
	}
	return nil
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Allowed     []string `json:"allowed,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Allowed:     f.Allowed,
	})
}

func (f *Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

// Default maps every registered key to its field.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

type option func(*Field)

func oneOf(values ...string) option {
	return func(f *Field) { f.Allowed = values }
}

func atLeast(floor int) option {
	return func(f *Field) { f.Min = mo.Some(floor) }
}

func init() {
	register := func(k string, v any, desc string, options ...option) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		field := Field{Key: k, Value: v, Description: desc}
		for _, apply := range options {
			apply(&field)
		}
		Default[k] = field
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerEngine, "mpv", "Media engine to use", oneOf("mpv", "virtual"))
	register(key.PlayerIdleThreshold, 3000, "Milliseconds without input before the controls hide", atLeast(1))
	register(key.PlayerStartPaused, false, "Open media paused")
	register(key.PlayerLoop, false, "Restart media at end of stream")
	register(key.PlayerSeekStep, 5, "Seconds moved per arrow key while scrubbing", atLeast(1))
	register(key.PlayerMPVArgs, []string{}, "Extra arguments passed to mpv")
	register(key.PlayerTickRate, 100, "Milliseconds between UI refreshes", atLeast(10))
	register(key.VirtualFPS, 25, "Frame rate of the virtual engine", atLeast(1))
	register(key.TUIShowHelp, true, "Show key bindings under the seek bar")
	register(key.TUIShowTitle, true, "Reflect playback state in the terminal window title")
	register(key.IconsVariant, "plain", "Icons variant (nerd requires a nerd font)", oneOf(icon.AvailableVariants()...))
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Log level, from least to most verbose", oneOf("panic", "fatal", "error", "warn", "info", "debug", "trace"))
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")

	if len(Default) != key.DefinedFieldsCount {
		panic(fmt.Sprintf("registered %d config fields, expected %d", len(Default), key.DefinedFieldsCount))
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"label":    style.Fg(color.HiCyan),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"join":     func(values []string) string { return strings.Join(values, ", ") },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ purple .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Value:" }}   {{ hl (value .Key) }}
{{ label "Default:" }} {{ hl (.Value) }}
{{ label "Type:" }}    {{ typename .Value }}{{ if .Allowed }}
{{ label "Allowed:" }} {{ join .Allowed }}{{ end }}`))
