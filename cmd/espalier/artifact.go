package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/espalier/pkg/ports"
	"github.com/spf13/cobra"
)

var artifactCmd = &cobra.Command{
	Use:   "artifact",
	Short: "Manage stored generation artifacts",
	Long: `List, inspect, and remove artifacts persisted by the serve surface.
Targets the same store serve uses: pass --redis for a Redis-backed store, or
--store-dir for a file store somewhere other than .espalier/artifacts.`,
}

var artifactLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := getArtifactStore(cmd)
		defer closeStore()

		artifacts, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing artifacts: %v\n", err)
			os.Exit(1)
		}

		if len(artifacts) == 0 {
			fmt.Println("No stored artifacts found.")
			return
		}

		fmt.Println("Stored Artifacts:")
		for _, a := range artifacts {
			fmt.Printf("- %s  %-20s %s\n", a.ID, a.Name, a.CreatedAt.Format(time.RFC3339))
		}
	},
}

var artifactInspectCmd = &cobra.Command{
	Use:   "inspect <artifact-id>",
	Short: "Inspect a stored artifact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := getArtifactStore(cmd)
		defer closeStore()

		artifact, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading artifact '%s': %v\n", args[0], err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling artifact: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var artifactRmCmd = &cobra.Command{
	Use:   "rm <artifact-id>...",
	Short: "Remove one or more artifacts",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := getArtifactStore(cmd)
		defer closeStore()

		hasError := false
		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				fmt.Printf("Error removing '%s': %v\n", id, err)
				hasError = true
			} else {
				fmt.Printf("Removed artifact '%s'\n", id)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(artifactCmd)
	artifactCmd.AddCommand(artifactLsCmd)
	artifactCmd.AddCommand(artifactInspectCmd)
	artifactCmd.AddCommand(artifactRmCmd)

	artifactCmd.PersistentFlags().String("redis", "", "Redis address for the artifact store (host:port)")
	artifactCmd.PersistentFlags().String("store-dir", "", "Artifact store directory (defaults to .espalier/artifacts)")
}

func getArtifactStore(cmd *cobra.Command) (ports.ArtifactStore, func()) {
	redisAddr, _ := cmd.Flags().GetString("redis")
	storeDir, _ := cmd.Flags().GetString("store-dir")

	store, closeStore, _, err := openStore(redisAddr, storeDir)
	if err != nil {
		fmt.Printf("Error opening artifact store: %v\n", err)
		os.Exit(1)
	}
	return store, closeStore
}
