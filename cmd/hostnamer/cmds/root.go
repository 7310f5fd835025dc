package cmd

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DCSO/hostnamer/util"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var logFile *os.File

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hostnamer",
	Short: "DNS-over-HTTPS host name resolution for tabular IP lists",
	Long: `hostnamer resolves host names for IP addresses via a DNS-over-HTTPS
JSON API. It can fill in missing host names in CSV files, PostgreSQL tables
or Redis lists, and perform single forward and reverse lookups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func setupLogging() error {
	logfilename := viper.GetString("logging.file")
	if len(logfilename) > 0 {
		log.Println("Switching to log file", logfilename)
		file, err := os.OpenFile(logfilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			return err
		}
		logFile = file
		log.SetFormatter(&log.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
		log.SetOutput(file)
	}

	logjson := viper.GetBool("logging.json")
	if logjson {
		log.SetFormatter(&log.JSONFormatter{})
	}

	verbose := viper.GetBool("verbose")
	if verbose {
		log.Info("verbose log output enabled")
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hostnamer.yaml)")

	// Resolver options
	rootCmd.PersistentFlags().StringP("doh-endpoint", "e", util.DefaultDoHEndpoint, "DNS-over-HTTPS JSON API endpoint")
	viper.BindPFlag("doh.endpoint", rootCmd.PersistentFlags().Lookup("doh-endpoint"))
	rootCmd.PersistentFlags().DurationP("timeout", "", util.DefaultDoHTimeout, "timeout for a single resolver request")
	viper.BindPFlag("doh.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	rootCmd.PersistentFlags().StringSliceP("doh-rootcas", "", []string{}, "root CA certificate files used to verify the DoH endpoint")
	viper.BindPFlag("doh.rootcas", rootCmd.PersistentFlags().Lookup("doh-rootcas"))
	rootCmd.PersistentFlags().BoolP("doh-insecure", "", false, "skip TLS verification of the DoH endpoint")
	viper.BindPFlag("doh.insecure", rootCmd.PersistentFlags().Lookup("doh-insecure"))
	rootCmd.PersistentFlags().BoolP("ipv6", "6", false, "allow reverse lookups of IPv6 addresses (ip6.arpa)")
	viper.BindPFlag("doh.ipv6", rootCmd.PersistentFlags().Lookup("ipv6"))
	rootCmd.PersistentFlags().BoolP("strip-dot", "", false, "remove trailing dot from resolved names")
	viper.BindPFlag("doh.strip-dot", rootCmd.PersistentFlags().Lookup("strip-dot"))
	rootCmd.PersistentFlags().BoolP("system-resolver", "", false, "use the system resolver instead of DoH when filling")
	viper.BindPFlag("doh.system-resolver", rootCmd.PersistentFlags().Lookup("system-resolver"))

	// Logging options
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging (debug log level)")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	rootCmd.PersistentFlags().StringP("logfile", "", "", "Path to log file")
	viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("logfile"))
	rootCmd.PersistentFlags().BoolP("logjson", "", false, "Output logs in JSON format")
	viper.BindPFlag("logging.json", rootCmd.PersistentFlags().Lookup("logjson"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Fatal(err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName("." + util.ToolName)
	}

	viper.SetEnvPrefix(util.ToolNameUpper)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}
