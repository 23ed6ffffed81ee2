package tripgraph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripwise/go-tripgraph"
	"github.com/tripwise/go-tripgraph/pkg/config"
	"github.com/tripwise/go-tripgraph/pkg/dataset"
	"github.com/tripwise/go-tripgraph/pkg/driver"
	"github.com/tripwise/go-tripgraph/pkg/logger"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the travel CSV files into Neo4j",
	Long: `Load the traveller, hotel, review and visa CSV files into Neo4j as a
property graph.

The load runs a fixed sequence of idempotent steps:
- uniqueness constraints for every merge key
- Traveller and Hotel nodes
- Country and City nodes with location and origin edges
- Review nodes with WROTE, REVIEWED and STAYED_AT edges
- the average overall score per reviewed hotel
- NEEDS_VISA edges between countries

Connection settings come from a key=value credentials file and can be
overridden through environment variables and command-line flags.`,
	RunE: runLoad,
}

var (
	loadConfigPath string
	loadDataDir    string
)

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadConfigPath, "config", "config.txt", "Path to the credentials file")
	loadCmd.Flags().StringVar(&loadDataDir, "data-dir", ".", "Directory holding the CSV files")

	// Data file flags
	loadCmd.Flags().String("travellers", "users.csv", "Travellers CSV file name")
	loadCmd.Flags().String("hotels", "hotels.csv", "Hotels CSV file name")
	loadCmd.Flags().String("reviews", "reviews.csv", "Reviews CSV file name")
	loadCmd.Flags().String("visa", "visa.csv", "Visa rules CSV file name")

	// Database flags
	loadCmd.Flags().String("db-uri", "", "Database URI")
	loadCmd.Flags().String("db-username", "", "Database username")
	loadCmd.Flags().String("db-password", "", "Database password")
	loadCmd.Flags().String("db-database", "", "Database name")

	loadCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(loadConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.NewDefaultLogger(level)

	// Read and validate the CSV files before touching the database
	data, err := dataset.Load(dataset.Paths{
		Travellers: cfg.Data.TravellersPath(),
		Hotels:     cfg.Data.HotelsPath(),
		Reviews:    cfg.Data.ReviewsPath(),
		Visa:       cfg.Data.VisaPath(),
	})
	if err != nil {
		return err
	}

	ctx := context.Background()

	d, err := driver.NewNeo4jDriver(cfg.Database.URI, cfg.Database.Username, cfg.Database.Password, cfg.Database.Database)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}

	if err := d.VerifyConnectivity(ctx); err != nil {
		d.Close(ctx)
		return fmt.Errorf("unable to reach neo4j at %s: %w", cfg.Database.URI, err)
	}

	client := tripgraph.NewClient(d, log)
	defer client.Close(ctx)

	if _, err := client.Load(ctx, data); err != nil {
		return err
	}

	fmt.Println("KG created successfully.")
	return nil
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Data flags
	if cmd.Flags().Changed("data-dir") {
		cfg.Data.Dir = loadDataDir
	}
	if cmd.Flags().Changed("travellers") {
		cfg.Data.TravellersFile, _ = cmd.Flags().GetString("travellers")
	}
	if cmd.Flags().Changed("hotels") {
		cfg.Data.HotelsFile, _ = cmd.Flags().GetString("hotels")
	}
	if cmd.Flags().Changed("reviews") {
		cfg.Data.ReviewsFile, _ = cmd.Flags().GetString("reviews")
	}
	if cmd.Flags().Changed("visa") {
		cfg.Data.VisaFile, _ = cmd.Flags().GetString("visa")
	}

	// Database flags
	if cmd.Flags().Changed("db-uri") {
		cfg.Database.URI, _ = cmd.Flags().GetString("db-uri")
	}
	if cmd.Flags().Changed("db-username") {
		cfg.Database.Username, _ = cmd.Flags().GetString("db-username")
	}
	if cmd.Flags().Changed("db-password") {
		cfg.Database.Password, _ = cmd.Flags().GetString("db-password")
	}
	if cmd.Flags().Changed("db-database") {
		cfg.Database.Database, _ = cmd.Flags().GetString("db-database")
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
}
