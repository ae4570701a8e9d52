// Command pharmsim runs and renders the pharmacy logistics environments
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/samuelfneumann/pharmsim/environment/envconfig"
	"github.com/spf13/cobra"
)

const (
	configEnvVar = "PHARMSIM_CONFIG"
	seedEnvVar   = "PHARMSIM_SEED"

	defaultDiscount = 0.99
	defaultSeed     = 192382
)

// flags shared by all commands
var (
	configPath string
	envName    string
	seed       uint64
)

func main() {
	log.SetFlags(0)

	// Defaults may come from a .env file
	for _, envFile := range []string{".env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd := &cobra.Command{
		Use:   "pharmsim",
		Short: "Run and render pharmacy logistics environments",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		os.Getenv(configEnvVar), "environment config file (.json, .yaml)")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e",
		string(envconfig.Pickup),
		"environment to use without a config file (Dispatch, Pickup, Navigate)")
	rootCmd.PersistentFlags().Uint64VarP(&seed, "seed", "s", defaultSeedValue(),
		"random seed")

	rootCmd.AddCommand(newRunCmd(), newRenderCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig returns the environment configuration selected by the
// command line flags
func loadConfig() (envconfig.Config, error) {
	if configPath == "" {
		c := envconfig.NewConfig(envconfig.EnvName(envName), defaultDiscount)
		if err := c.Validate(); err != nil {
			return envconfig.Config{}, err
		}
		return c, nil
	}
	return envconfig.Load(configPath)
}

func defaultSeedValue() uint64 {
	s, ok := os.LookupEnv(seedEnvVar)
	if !ok {
		return defaultSeed
	}

	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		log.Printf("ignoring %v=%q: %v", seedEnvVar, s, fmt.Errorf("not a "+
			"seed: %w", err))
		return defaultSeed
	}
	return value
}
