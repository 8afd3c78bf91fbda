package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unexge/lockmigrate/migrate"
	"github.com/unexge/lockmigrate/yarnlock"
)

var convertCmd = &cobra.Command{
	Use:   "convert <yarn.lock>",
	Short: "Convert a yarn.lock v1 file to package-lock.json",
	Long:  "Parse a yarn.lock v1 file, resolve its dependency graph, and write an equivalent package-lock.json (lockfileVersion 1).",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "package-lock.json", "Output file path")
	convertCmd.Flags().String("name", "", "Package name for the lockfile header")
	convertCmd.Flags().String("pkg-version", "0.0.0", "Package version for the lockfile header")
	convertCmd.Flags().Bool("dry-run", false, "Parse and resolve only, do not write output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	lockPath := args[0]
	verbose := viper.GetBool("verbose")
	output, _ := cmd.Flags().GetString("output")
	name, _ := cmd.Flags().GetString("name")
	pkgVersion, _ := cmd.Flags().GetString("pkg-version")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	src, err := os.ReadFile(lockPath)
	if err != nil {
		return fmt.Errorf("reading lockfile: %w", err)
	}

	entries, err := yarnlock.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", lockPath, err)
	}

	graph, err := migrate.Resolve(entries)
	if err != nil {
		return fmt.Errorf("resolving dependency graph: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsed %d entries: %d packages, %d comments\n",
			len(entries), len(graph.Packages), len(graph.Comments))
	}

	lock, report := migrate.ConvertNPM(graph, name, pkgVersion)

	if dryRun {
		fmt.Fprintf(os.Stderr, "Dry run: %s parsed successfully\n", lockPath)
		printReport(report)
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := lock.Write(f); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
	printReport(report)
	return nil
}

func printReport(r *migrate.Report) {
	fmt.Fprintf(os.Stderr, "[%s]\n", r.ID)
	fmt.Fprintf(os.Stderr, "  Packages: %d (%d selectors)\n", r.Packages, r.Selectors)
	for _, sel := range r.Unresolved {
		fmt.Fprintf(os.Stderr, "  Unresolved: %s\n", sel)
	}
	for _, pkg := range r.Skipped {
		fmt.Fprintf(os.Stderr, "  Skipped (version collision): %s\n", pkg)
	}
}
