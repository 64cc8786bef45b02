// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/rom-organizer/internal/catalog"
	"github.com/jdfalk/rom-organizer/internal/config"
	"github.com/jdfalk/rom-organizer/internal/dat"
	"github.com/jdfalk/rom-organizer/internal/fileops"
	"github.com/jdfalk/rom-organizer/internal/matcher"
	"github.com/jdfalk/rom-organizer/internal/report"
	"github.com/jdfalk/rom-organizer/internal/verify"
	"github.com/jdfalk/rom-organizer/internal/watcher"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rom-organizer",
	Short: "Reconcile ROM collections against curated name lists",
	Long: `ROM Organizer matches the files in a ROM collection against curated
reference name lists and DAT manifests.

It normalizes names, scores every candidate pair with a pluggable similarity
backend, and assigns each reference name its best match above a threshold.
Supporting commands verify checksums against DAT files, convert DAT files to
JSON, extract archives and copy matched files.`,
}

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match reference names against filenames",
	Long: `Match a list of reference names against a list of filenames or the
contents of a directory, writing matched and unmatched outputs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		namesFile, _ := cmd.Flags().GetString("names")
		filenamesFile, _ := cmd.Flags().GetString("filenames")
		dir, _ := cmd.Flags().GetString("dir")
		outputDir, _ := cmd.Flags().GetString("output")
		saveRun, _ := cmd.Flags().GetBool("save")
		watchMode, _ := cmd.Flags().GetBool("watch")

		if namesFile == "" {
			return fmt.Errorf("names file not specified")
		}
		if filenamesFile == "" && dir == "" {
			return fmt.Errorf("either a filenames file or a directory is required")
		}

		names, err := report.ReadLines(namesFile)
		if err != nil {
			return fmt.Errorf("failed to read names: %w", err)
		}

		opts, err := matchOptions()
		if err != nil {
			return err
		}

		runOnce := func() error {
			targets, err := targetNames(filenamesFile, dir)
			if err != nil {
				return err
			}

			fmt.Printf("Matching %d names against %d candidates (%s/%s, threshold %.1f)\n",
				len(names), len(targets), config.AppConfig.Backend, config.AppConfig.Method,
				config.AppConfig.Threshold)

			result, err := matcher.ReconcileParallel(cmd.Context(), names, targets, opts, config.AppConfig.Workers)
			if err != nil {
				return fmt.Errorf("match error: %w", err)
			}
			if config.AppConfig.Sort {
				result.SortByName()
			}

			fmt.Printf("Matched %d, unmatched %d\n", len(result.Matches), len(result.Unmatched))

			if err := writeOutputs(outputDir, result, opts); err != nil {
				return err
			}
			if saveRun {
				runID, err := saveToCatalog(result, opts)
				if err != nil {
					return err
				}
				fmt.Printf("Saved run %s to %s\n", runID, config.AppConfig.DatabasePath)
			}
			return nil
		}

		if err := runOnce(); err != nil {
			return err
		}
		if !watchMode {
			return nil
		}
		if dir == "" {
			return fmt.Errorf("watch mode requires a directory")
		}
		return watchAndRematch(dir, runOnce)
	},
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify ROM checksums against a DAT manifest",
	Long:  `Recompute the checksum of every ROM a DAT manifest names and compare.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		datFile, _ := cmd.Flags().GetString("dat")
		checksum, _ := cmd.Flags().GetString("checksum")

		if dir == "" || datFile == "" {
			return fmt.Errorf("both a directory and a DAT file are required")
		}

		typ, err := fileops.ParseChecksumType(checksum)
		if err != nil {
			return err
		}

		manifest, err := dat.Load(datFile)
		if err != nil {
			return err
		}

		fmt.Printf("Verifying %s against %s (%s)\n", dir, datFile, typ)
		rep, err := verify.Directory(dir, manifest, verify.Options{ChecksumType: typ, ShowProgress: true})
		if err != nil {
			return err
		}

		for _, item := range rep.Items {
			if item.Status == verify.StatusOK || item.Status == verify.StatusSkipped {
				continue
			}
			fmt.Printf("%s: %s (expected %s, got %s)\n", item.Status, item.Name, item.Expected, item.Actual)
		}
		fmt.Printf("OK %d, mismatched %d, missing %d, skipped %d\n",
			rep.OK, rep.Mismatched, rep.Missing, rep.Skipped)

		if !rep.Clean() {
			return fmt.Errorf("verification failed: %d mismatched, %d missing", rep.Mismatched, rep.Missing)
		}
		return nil
	},
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a DAT manifest to JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		datFile, _ := cmd.Flags().GetString("dat")
		outFile, _ := cmd.Flags().GetString("out")

		if datFile == "" {
			return fmt.Errorf("DAT file not specified")
		}
		if outFile == "" {
			outFile = removeSuffix(datFile) + ".json"
		}

		if err := dat.ConvertToJSON(datFile, outFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", outFile)
		return nil
	},
}

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract zip archives from a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		destination, _ := cmd.Flags().GetString("destination")
		separate, _ := cmd.Flags().GetBool("separate-dirs")

		if source == "" || destination == "" {
			return fmt.Errorf("both a source and a destination directory are required")
		}

		n, err := fileops.ExtractArchives(source, destination, separate)
		if err != nil {
			return err
		}
		fmt.Printf("Extracted %d archives to %s\n", n, destination)
		return nil
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List files in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		outFile, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		recursive, _ := cmd.Flags().GetBool("recursive")

		if source == "" {
			return fmt.Errorf("source directory not specified")
		}

		paths, err := fileops.ListFiles(source, recursive)
		if err != nil {
			return err
		}

		if outFile == "" {
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		}

		if err := fileops.WriteFileList(paths, outFile, fileops.ListFormat(format)); err != nil {
			return err
		}
		fmt.Printf("Wrote %d entries to %s\n", len(paths), outFile)
		return nil
	},
}

// copyCmd represents the copy command
var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy listed files from one directory to another",
	Long:  `Copy the files named in a list file (one per line) from source to destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listFile, _ := cmd.Flags().GetString("list")
		source, _ := cmd.Flags().GetString("source")
		destination, _ := cmd.Flags().GetString("destination")
		extension, _ := cmd.Flags().GetString("extension")
		ratePerSec, _ := cmd.Flags().GetFloat64("rate")

		if listFile == "" || source == "" || destination == "" {
			return fmt.Errorf("a list file, source and destination are all required")
		}

		filenames, err := report.ReadLines(listFile)
		if err != nil {
			return fmt.Errorf("failed to read list: %w", err)
		}

		copied, err := fileops.CopyFromList(cmd.Context(), filenames, source, destination, fileops.CopyOptions{
			Extension:    extension,
			RatePerSec:   ratePerSec,
			ShowProgress: true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Copied %d of %d files to %s\n", copied, len(filenames), destination)
		return nil
	},
}

// matchOptions builds matcher options from the active configuration.
func matchOptions() (matcher.Options, error) {
	backend, err := matcher.ParseBackend(config.AppConfig.Backend)
	if err != nil {
		return matcher.Options{}, err
	}
	method, err := matcher.ParseMethod(config.AppConfig.Method)
	if err != nil {
		return matcher.Options{}, err
	}
	pattern, err := matcher.CompilePattern(config.AppConfig.Pattern)
	if err != nil {
		return matcher.Options{}, fmt.Errorf("invalid normalization pattern: %w", err)
	}
	return matcher.Options{
		Backend:      backend,
		Method:       method,
		Threshold:    config.AppConfig.Threshold,
		Pattern:      pattern,
		FilenameMode: config.AppConfig.FilenameMode,
		Platform:     matcher.Platform(config.AppConfig.Platform),
	}, nil
}

// targetNames resolves the candidate list from a filenames file or directory.
func targetNames(filenamesFile, dir string) ([]string, error) {
	if dir != "" {
		targets, err := fileops.ListFiles(dir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		return targets, nil
	}
	targets, err := report.ReadLines(filenamesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read filenames: %w", err)
	}
	return targets, nil
}

// writeOutputs writes the text outputs plus the YAML summary into outputDir.
func writeOutputs(outputDir string, result *matcher.Result, opts matcher.Options) error {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := report.WriteTextFiles(outputDir, result); err != nil {
		return err
	}
	summaryPath := filepath.Join(outputDir, "report.yaml")
	if err := report.NewSummary(result, opts).WriteYAML(summaryPath); err != nil {
		return err
	}
	fmt.Printf("Reports written to %s\n", outputDir)
	return nil
}

func saveToCatalog(result *matcher.Result, opts matcher.Options) (string, error) {
	store, err := catalog.NewStore(config.AppConfig.DatabasePath)
	if err != nil {
		return "", err
	}
	defer store.Close()
	return store.SaveRun(result, opts)
}

// watchAndRematch re-runs the match whenever the watched directory settles.
func watchAndRematch(dir string, runOnce func() error) error {
	w := watcher.New(func(string) {
		if err := runOnce(); err != nil {
			fmt.Printf("Warning: re-match failed: %v\n", err)
		}
	}, config.AppConfig.WatchDebounce, config.AppConfig.RomExtensions)

	if err := w.Start(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer w.Stop()

	fmt.Printf("Watching %s for changes (Ctrl-C to stop)\n", dir)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	fmt.Println("\nStopping watcher...")
	return nil
}

func removeSuffix(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rom-organizer.yaml)")
	rootCmd.PersistentFlags().String("backend", "strutil", "similarity backend: strutil, fuzzysearch or difflib")
	rootCmd.PersistentFlags().String("method", "full", "match method: full or partial")
	rootCmd.PersistentFlags().Float64("threshold", 80.0, "minimum score (0-100) to accept a match")
	rootCmd.PersistentFlags().String("pattern", `[^a-z0-9]+`, "normalization strip pattern")
	rootCmd.PersistentFlags().String("platform", "windows", "filename validity rules: windows or unix")
	rootCmd.PersistentFlags().Int("workers", 1, "number of parallel match workers")
	rootCmd.PersistentFlags().String("db", "rom-organizer.db", "path to the match history database")

	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("method", rootCmd.PersistentFlags().Lookup("method"))
	viper.BindPFlag("threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("pattern", rootCmd.PersistentFlags().Lookup("pattern"))
	viper.BindPFlag("platform", rootCmd.PersistentFlags().Lookup("platform"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(copyCmd)

	// match command specific flags
	matchCmd.Flags().String("names", "", "file with reference names, one per line")
	matchCmd.Flags().String("filenames", "", "file with candidate filenames, one per line")
	matchCmd.Flags().String("dir", "", "directory whose files are the candidates")
	matchCmd.Flags().String("output", "", "directory for matched/unmatched outputs (default current)")
	matchCmd.Flags().Bool("sort", true, "sort matches by reference name")
	matchCmd.Flags().Bool("save", false, "save the run to the match history database")
	matchCmd.Flags().Bool("watch", false, "re-run the match when the candidate directory changes")
	viper.BindPFlag("sort", matchCmd.Flags().Lookup("sort"))

	// verify command specific flags
	verifyCmd.Flags().String("dir", "", "directory containing the ROM files")
	verifyCmd.Flags().String("dat", "", "DAT manifest to verify against")
	verifyCmd.Flags().String("checksum", "sha1", "checksum type: crc, md5 or sha1")

	// convert command specific flags
	convertCmd.Flags().String("dat", "", "DAT manifest to convert")
	convertCmd.Flags().String("out", "", "output JSON path (default: DAT path with .json)")

	// extract command specific flags
	extractCmd.Flags().String("source", "", "directory containing zip archives")
	extractCmd.Flags().String("destination", "", "directory to extract into")
	extractCmd.Flags().Bool("separate-dirs", false, "extract each archive into its own directory")

	// list command specific flags
	listCmd.Flags().String("source", "", "directory to list")
	listCmd.Flags().String("out", "", "output file (default: print to stdout)")
	listCmd.Flags().String("format", "txt", "output format: txt or csv")
	listCmd.Flags().Bool("recursive", false, "recurse into subdirectories")

	// copy command specific flags
	copyCmd.Flags().String("list", "", "file naming the files to copy, one per line")
	copyCmd.Flags().String("source", "", "directory to copy from")
	copyCmd.Flags().String("destination", "", "directory to copy into")
	copyCmd.Flags().String("extension", "", "only copy files with this extension")
	copyCmd.Flags().Float64("rate", 0, "copy at most this many files per second (0 = unlimited)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rom-organizer")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
