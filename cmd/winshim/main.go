//go:build windows

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/function61/gokit/dynversion"
	"github.com/function61/gokit/logex"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolved in PersistentPreRun: explicit flag > config file > built-in default
var debug = false

func main() {
	pathArg := ""
	outputArg := ""
	extraArgs := ""
	forceGui := false
	forceConsole := false
	wdType := ""
	wdPath := ""

	app := &cobra.Command{
		Use:     "winshim [target] [output]",
		Short:   "Creates shim executables that relay invocations to a target program",
		Version: dynversion.Version,
		Args:    cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) >= 1 && pathArg == "" {
				pathArg = args[0]
			}
			if len(args) >= 2 && outputArg == "" {
				outputArg = args[1]
			}

			if pathArg == "" {
				cmd.Help()
				os.Exit(1)
			}

			if wdType == "" {
				wdType = viper.GetString("wd_type")
			}

			subsystem := ""
			switch {
			case forceGui && forceConsole:
				fmt.Fprintln(os.Stderr, "WARN: both --gui and --console given; assuming GUI")
				subsystem = "GUI"
			case forceGui:
				subsystem = "GUI"
			case forceConsole:
				subsystem = "CONSOLE"
			}

			exitWithErrorIfErr(buildShim(buildRequest{
				InputPath:  pathArg,
				OutputPath: outputArg,
				ExtraArgs:  extraArgs,
				Subsystem:  subsystem,
				WdType:     wdType,
				WdPath:     wdPath,
			}, appLogger()))

			fmt.Printf("Shim created for %s\n", pathArg)
		},
	}

	app.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if !app.PersistentFlags().Changed("debug") {
			debug = viper.GetBool("debug")
		}
	}

	app.Flags().StringVarP(&pathArg, "path", "p", pathArg, "Path to the executable to shim")
	app.Flags().StringVarP(&outputArg, "output", "o", outputArg, "Path (or directory) for the shim; defaults to the current directory")
	app.Flags().StringVarP(&extraArgs, "command", "c", extraArgs, "Arguments the shim always prepends when invoking the target")
	app.Flags().BoolVar(&forceGui, "gui", forceGui, "Treat the target as a GUI program instead of inferring from its headers")
	app.Flags().BoolVar(&forceConsole, "console", forceConsole, "Treat the target as a console program instead of inferring from its headers")
	app.Flags().StringVar(&wdType, "wd-type", wdType, "Working directory policy for the target: CMD | APP | SHIM | PATH")
	app.Flags().StringVar(&wdPath, "wd-path", wdPath, "Working directory to use when --wd-type=PATH")
	app.PersistentFlags().BoolVar(&debug, "debug", debug, "Verbose output")

	app.AddCommand(inspectEntry())
	app.AddCommand(batchEntry())
	app.AddCommand(embedStubsEntry())

	cobra.OnInitialize(initConfig)

	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

// reads %USERPROFILE%\.winshim\config.yaml, if present
func initConfig() {
	viper.SetDefault("wd_type", "")
	viper.SetDefault("debug", false)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	viper.AddConfigPath(filepath.Join(home, ".winshim"))
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// a missing config file just means running with defaults
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "WARN: config file ignored: %v\n", err)
		}
	}
}

func appLogger() *log.Logger {
	if debug {
		return logex.StandardLogger()
	}

	return logex.Discard
}

func exitWithErrorIfErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
