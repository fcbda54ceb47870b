package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"guild/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the client configuration file",
	RunE:  runConfigPath,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.File()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s.\n", path)
		return nil
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s.\n", path)
	return nil
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
