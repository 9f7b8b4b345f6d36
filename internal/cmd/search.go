package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cheerioskun/charbrowser/internal/catalog"
	"github.com/cheerioskun/charbrowser/internal/models"
)

var (
	searchStatus  string
	searchSpecies string
	searchGender  string
	searchJSON    bool
	searchShowURL bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Run a single query and print the matching characters",
	Long: `Query the character catalog once and print the results.

This command performs the same request the interactive browser would make for
the given filters:
- name is always sent (empty when omitted)
- status, species and gender are sent only when set

Examples:
  charbrowser search Morty
  charbrowser search --status dead --species alien
  charbrowser search rick --gender male --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	// Search-specific flags
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "status filter: alive, dead or unknown")
	searchCmd.Flags().StringVar(&searchSpecies, "species", "", "species filter: human or alien")
	searchCmd.Flags().StringVar(&searchGender, "gender", "", "gender filter: male, female or unknown")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the result list as JSON")
	searchCmd.Flags().BoolVar(&searchShowURL, "show-url", false, "print the request URL before the results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	filter, err := parseSearchFilter(args, searchStatus, searchSpecies, searchGender)
	if err != nil {
		return err
	}

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Close()

	client := catalog.NewClient(cfg.ClientOptions(logger))
	out := cmd.OutOrStdout()

	if searchShowURL {
		fmt.Fprintln(out, catalog.BuildURL(client.Endpoint(), filter))
	}

	page, err := client.Search(context.Background(), filter)
	if err != nil {
		logger.Error("search for %s failed: %v", filter, err)
		return fmt.Errorf("search failed: %w", err)
	}

	rs := models.NewResultSet(filter, page)
	if searchJSON {
		return writeResultsJSON(out, rs)
	}
	writeResultsText(out, rs)
	return nil
}

// parseSearchFilter validates the CLI arguments into a filter state
func parseSearchFilter(args []string, status, species, gender string) (models.FilterState, error) {
	var f models.FilterState
	if len(args) > 0 {
		f.Search = args[0]
	}

	var err error
	if f.Status, err = models.ParseStatus(status); err != nil {
		return models.FilterState{}, err
	}
	if f.Species, err = models.ParseSpecies(species); err != nil {
		return models.FilterState{}, err
	}
	if f.Gender, err = models.ParseGender(gender); err != nil {
		return models.FilterState{}, err
	}
	return f, nil
}

func writeResultsJSON(w io.Writer, rs *models.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs.Characters); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func writeResultsText(w io.Writer, rs *models.ResultSet) {
	if rs.IsEmpty() {
		fmt.Fprintln(w, "No characters found.")
		return
	}

	fmt.Fprintf(w, "Showing %d of %d characters\n\n", rs.Len(), max(rs.Total, rs.Len()))
	for i, c := range rs.Characters {
		fmt.Fprintf(w, "%d. %s\n", i+1, c.Name)
		fmt.Fprintf(w, "   Status: %s | Species: %s | Gender: %s\n", c.Status, c.Species, c.Gender)
		if strings.TrimSpace(c.Image) != "" {
			fmt.Fprintf(w, "   %s\n", c.Image)
		}
	}
}
