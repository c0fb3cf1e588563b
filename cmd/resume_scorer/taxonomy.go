package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect and validate skill taxonomy files",
}

var taxonomyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a taxonomy file",
	Long:  "Validate a JSON or YAML taxonomy file against the schema and check that no synonym maps to two skills.",
	RunE:  runTaxonomyValidate,
}

var taxonomyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a taxonomy",
	Long:  "Print a taxonomy file, or the embedded one when --file is not set, as a summary, JSON or YAML.",
	RunE:  runTaxonomyShow,
}

var (
	taxonomyFile   string
	taxonomyFormat string
)

func init() {
	taxonomyValidateCmd.Flags().StringVarP(&taxonomyFile, "file", "f", "", "Taxonomy file (required)")
	taxonomyShowCmd.Flags().StringVarP(&taxonomyFile, "file", "f", "", "Taxonomy file (default embedded)")
	taxonomyShowCmd.Flags().StringVar(&taxonomyFormat, "format", "summary", "Output format: summary, json or yaml")

	taxonomyCmd.AddCommand(taxonomyValidateCmd)
	taxonomyCmd.AddCommand(taxonomyShowCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomyValidate(_ *cobra.Command, _ []string) error {
	if err := requireFlag("file", taxonomyFile); err != nil {
		return err
	}
	tax, err := taxonomy.LoadFile(taxonomyFile)
	if err != nil {
		return err
	}
	fmt.Printf("Taxonomy %s is valid: version %s, %d skills, %d terms, %d roles\n",
		taxonomyFile, tax.Version(), tax.Len(), len(tax.Terms()), len(tax.Roles()))
	return nil
}

func runTaxonomyShow(_ *cobra.Command, _ []string) error {
	var (
		tax *taxonomy.Taxonomy
		err error
	)
	if taxonomyFile == "" {
		tax, err = taxonomy.Default()
	} else {
		tax, err = taxonomy.LoadFile(taxonomyFile)
	}
	if err != nil {
		return err
	}

	switch taxonomyFormat {
	case "summary":
		observability.NewPrinter(os.Stdout).PrintTaxonomy(tax)
		return nil
	case string(taxonomy.FormatJSON), string(taxonomy.FormatYAML):
		data, err := tax.Marshal(taxonomy.Format(taxonomyFormat))
		if err != nil {
			return fmt.Errorf("failed to encode taxonomy: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want summary, json or yaml)", taxonomyFormat)
	}
}
