// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config command.
//
// Subcommands:
//   - show (default): print the effective settings as TOML
//   - get KEY: print one setting in dot notation (plot.points)
//   - set KEY VALUE: change one setting in the config file
//   - path: print the config file location
//   - init [--force]: write a config file with the defaults

package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/parabola/internal/config"
	"github.com/jeranaias/parabola/internal/util"
)

// HandleConfig runs the config command.
func HandleConfig(args Args, s Streams) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args, s)
	case "get":
		return configGet(args, s)
	case "set":
		return configSet(args, s)
	case "path":
		return configPath(args, s)
	case "init":
		return configInit(args, s)
	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"must be one of show, get, set, path, init", "parabola config get plot.points")
	}
}

// targetPath is the file config set and config init write to.
func targetPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// =============================================================================
// SHOW / GET / PATH
// =============================================================================

func configShow(args Args, s Streams) error {
	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}
	path, exists := activePath(args)

	if args.JSON {
		return NewJSONResponse(CmdConfig.String(), ConfigData{
			Path:   path,
			Exists: exists,
			Config: cfg,
		}).PrintTo(s.Out)
	}

	text, err := cfg.EncodeTOML()
	if err != nil {
		return err
	}
	if path != "" && !args.Quiet {
		note := "# " + path
		if !exists {
			note += " (not created, showing defaults)"
		}
		fmt.Fprintln(s.Out, RenderConditional(DimStyle, note))
	}
	if isTerminalWriter(s.Out) && ColorsEnabled() {
		text = highlight(text, "toml")
	}
	fmt.Fprint(s.Out, text)
	return nil
}

// activePath is the file settings are read from.
func activePath(args Args) (string, bool) {
	if args.ConfigPath != "" {
		return args.ConfigPath, fileExists(args.ConfigPath)
	}
	if path, ok := config.FindConfigFile(); ok {
		return path, true
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", false
	}
	return path, false
}

func configGet(args Args, s Streams) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("KEY", "parabola config get plot.points")
	}
	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return NewUnknownKeyError(args.ConfigKey)
	}

	if args.JSON {
		return NewJSONResponse(CmdConfig.String(), ConfigValueData{
			Key:   args.ConfigKey,
			Value: value,
		}).PrintTo(s.Out)
	}
	fmt.Fprintln(s.Out, formatValue(value))
	return nil
}

func configPath(args Args, s Streams) error {
	path, exists := activePath(args)
	if path == "" {
		return NewNotFoundError("config directory", "home")
	}
	if args.JSON {
		return NewJSONResponse(CmdConfig.String(), ConfigData{Path: path, Exists: exists}).PrintTo(s.Out)
	}
	fmt.Fprintln(s.Out, path)
	return nil
}

// formatValue prints floats without exponent noise.
func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return util.FloatToString(f)
	}
	return fmt.Sprint(v)
}

// =============================================================================
// SET / INIT
// =============================================================================

func configSet(args Args, s Streams) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("KEY VALUE", "parabola config set plot.points 200")
	}
	path, err := targetPath(args)
	if err != nil {
		return err
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewValidationErrorWithExample("config", path,
			"only TOML files can be written", "parabola --config parabola.toml config set plot.points 200")
	}

	// Read the file itself, not the environment, so overrides are not saved.
	cfg := config.Default()
	switch {
	case fileExists(path):
		if err := config.LoadTOML(cfg, path); err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
	case args.ConfigPath == "":
		if jsonPath, err := config.ConfigPathJSON(); err == nil && fileExists(jsonPath) {
			if err := config.LoadJSON(cfg, jsonPath); err != nil {
				return fmt.Errorf("load config %s: %w", jsonPath, err)
			}
		}
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		if strings.HasPrefix(err.Error(), "unknown field") {
			return NewUnknownKeyError(args.ConfigKey)
		}
		return NewValidationError(args.ConfigKey, args.ConfigVal, err.Error())
	}
	if err := cfg.Migrate(); err != nil {
		return err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	value, _ := cfg.Get(args.ConfigKey)
	if args.JSON {
		return NewJSONResponse(CmdConfig.String(), ConfigValueData{
			Key:   args.ConfigKey,
			Value: value,
			Path:  path,
		}).PrintTo(s.Out)
	}
	if !args.Quiet {
		fmt.Fprintf(s.Out, "%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"), args.ConfigKey, formatValue(value))
	}
	return nil
}

func configInit(args Args, s Streams) error {
	path, err := targetPath(args)
	if err != nil {
		return err
	}
	if fileExists(path) && !args.Force {
		return NewValidationErrorWithExample("config", path, "file already exists", "parabola config init --force")
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse(CmdConfig.String(), ConfigData{Path: path, Exists: true}).PrintTo(s.Out)
	}
	if !args.Quiet {
		fmt.Fprintf(s.Out, "%s wrote %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
	}
	return nil
}

// =============================================================================
// HIGHLIGHTING
// =============================================================================

// highlight colours code for a 256-colour terminal. The input is returned
// unchanged when no lexer applies or formatting fails.
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
