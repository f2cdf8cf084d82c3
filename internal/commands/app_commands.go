package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/plugin"
)

// RegisterAppCommands registers the sheet and theme commands.
func RegisterAppCommands(api SheetEditor, themeAPI ThemeAPI) error {
	return errors.Join(
		RegisterSheetCommands(api),
		RegisterThemeCommands(api, themeAPI),
	)
}

// RegisterThemeCommands registers :theme and :themes.
func RegisterThemeCommands(api plugin.SheetAPI, themeAPI ThemeAPI) error {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ")
		if err := themeAPI.SetTheme(themeName); err != nil {
			themeList := strings.Join(themeAPI.ListThemes(), ", ")
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	return registerAll(api, map[string]plugin.CommandFunc{
		"theme":  themeCmdFunc,
		"themes": themeListCmdFunc,
	})
}

func registerAll(api plugin.SheetAPI, cmds map[string]plugin.CommandFunc) error {
	var errs []error
	for name, fn := range cmds {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
