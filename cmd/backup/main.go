package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gugudan/internal/config"
	"gugudan/internal/database"
	"gugudan/internal/repository"
	"gugudan/internal/service"
	"gugudan/internal/store"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	// Reset flags
	resetYes := resetCmd.Bool("yes", false, "Skip the confirmation prompt")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	kv := store.NewSQLStore(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, service.NewBackupService(kv), *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, service.NewBackupService(kv), *importInput, *importClear)

	case "reset":
		resetCmd.Parse(os.Args[2:])
		handleReset(ctx, kv, *resetYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting records to: %s", outputPath)
	if err := backupService.Export(ctx, outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	// Get file size
	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)
}

func handleImport(ctx context.Context, backupService *service.BackupService, inputPath string, clearData bool) {
	// Check if file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if clearData && !confirm("WARNING: This will delete all existing progress. Type 'yes' to confirm: ") {
		log.Println("Import cancelled")
		return
	}

	log.Printf("Importing records from: %s", inputPath)
	if err := backupService.Import(ctx, inputPath, clearData); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import complete!")
}

func handleReset(ctx context.Context, kv store.Store, skipConfirm bool) {
	if !skipConfirm && !confirm("WARNING: This will delete all progress, badges and settings. Type 'yes' to confirm: ") {
		log.Println("Reset cancelled")
		return
	}

	settingsService := service.NewSettingsService(ctx, repository.NewSettingsRepository(kv))
	quizService := service.NewQuizService(service.QuizDeps{Settings: settingsService})
	if err := service.NewResetService(kv, settingsService, quizService).Reset(ctx); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	log.Println("Reset complete!")
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	var confirmation string
	fmt.Scanln(&confirmation)
	return confirmation == "yes"
}

func printUsage() {
	fmt.Println("구구단 놀이터 Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export all records to a JSON file")
	fmt.Println("  backup import [options]    Import records from a JSON file")
	fmt.Println("  backup reset [options]     Delete all records")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Reset Options:")
	fmt.Println("  -yes              Do not ask for confirmation")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export -output mybackup.json")
	fmt.Println("  backup import -input backup.json -clear")
	fmt.Println("  backup reset")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./gugudan.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
